package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmicwatch/cosmicwatch-go/internal/neo"
	"github.com/cosmicwatch/cosmicwatch-go/internal/prefs"
	"github.com/cosmicwatch/cosmicwatch-go/internal/view"
)

func feedCmd(a *app) *cobra.Command {
	var filter, search string

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "List this week's close approaches ranked by risk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.requireUser()
			if err != nil {
				return err
			}
			f, err := view.ParseFilter(filter)
			if err != nil {
				return err
			}

			objs, err := a.feed.FetchFeed(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, view.Stats(neo.Summarize(objs)))
			fmt.Fprintln(a.out, view.Feed(view.Apply(objs, f, search), p))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "all, hazardous or safe")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show names containing this text")
	return cmd
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show risk analysis and approach history for one object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.requireUser()
			if err != nil {
				return err
			}

			obj, err := a.feed.FetchOne(cmd.Context(), args[0])
			if neo.IsNotFound(err) {
				return fmt.Errorf("no near-earth object with id %s", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprint(a.out, view.Detail(obj, p, a.now()))
			return nil
		},
	}
}

func trackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "track <id>",
		Short: "Add an object to the watchlist, or remove it if already tracked",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, err := a.requireUser(); err != nil {
				return err
			}

			watching, err := a.store.ToggleWatchlist(args[0])
			if err != nil {
				return err
			}
			if watching {
				fmt.Fprintf(a.out, "Tracking %s\n", args[0])
			} else {
				fmt.Fprintf(a.out, "Stopped tracking %s\n", args[0])
			}
			return nil
		},
	}
}

func alertsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Show the next close approach of every tracked object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.requireUser()
			if err != nil {
				return err
			}

			tracked := make([]neo.Object, 0, len(p.Watchlist))
			for _, id := range p.Watchlist {
				obj, err := a.feed.FetchOne(cmd.Context(), id)
				if err != nil {
					a.logger.Warn("skipping tracked object", "id", id, "error", err)
					continue
				}
				tracked = append(tracked, obj)
			}

			fmt.Fprint(a.out, view.Alerts(tracked, p, a.now()))
			return nil
		},
	}
}

func unitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "unit km|mi",
		Short:     "Choose kilometres or miles for display",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(prefs.UnitKM), string(prefs.UnitMI)},
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.store.SetUnit(prefs.Unit(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Units set to %s\n", args[0])
			return nil
		},
	}
}
