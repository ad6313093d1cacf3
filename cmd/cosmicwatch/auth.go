package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmicwatch/cosmicwatch-go/internal/apiclient"
	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
)

func signupCmd(a *app) *cobra.Command {
	var req model.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if req.Name, err = a.prompt("Name", req.Name); err != nil {
				return err
			}
			if req.Email, err = a.prompt("Email", req.Email); err != nil {
				return err
			}
			if req.Password, err = a.prompt("Password", req.Password); err != nil {
				return err
			}

			resp, err := a.api.Signup(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.startSession(resp)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().StringVar(&req.Role, "role", "", "researcher or enthusiast (default enthusiast)")
	return cmd
}

func loginCmd(a *app) *cobra.Command {
	var req model.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if req.Email, err = a.prompt("Email", req.Email); err != nil {
				return err
			}
			if req.Password, err = a.prompt("Password", req.Password); err != nil {
				return err
			}

			resp, err := a.api.Login(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.startSession(resp)
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func (a *app) startSession(resp model.AuthResponse) error {
	if err := a.store.Login(resp.User); err != nil {
		return err
	}
	if err := a.store.SetToken(resp.Token); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", resp.User.Name, resp.User.Role)
	return nil
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the local watchlist",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.store.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Signed out")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user as the API sees them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.requireUser()
			if err != nil {
				return err
			}
			if p.Token == "" {
				return errNotSignedIn
			}

			user, err := a.api.Profile(cmd.Context(), p.Token)
			if apiclient.IsUnauthorized(err) {
				return fmt.Errorf("session expired, sign in again: %w", err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%s <%s>\nrole: %s\nid:   %s\n", user.Name, user.Email, user.Role, user.ID)
			return nil
		},
	}
}
