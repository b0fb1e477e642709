package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/spotsecure/internal/session"
	"github.com/Tiliavir/spotsecure/internal/storage"
)

var loginUser string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start an operator session for update, remove and clear",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the operator session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "User name (prompted when empty)")
}

func openSession() (*session.File, error) {
	base, err := storage.BaseDir()
	if err != nil {
		return nil, storageError(err)
	}
	return session.NewFile(base), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	in := bufio.NewReader(cmd.InOrStdin())
	user := loginUser
	if user == "" {
		if user, err = prompt(in, cmd.OutOrStdout(), "Username: "); err != nil {
			return userError(err)
		}
	}
	password, err := prompt(in, cmd.OutOrStdout(), "Password: ")
	if err != nil {
		return userError(err)
	}

	if err := s.Login(user, password, time.Now()); err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			return userError(err)
		}
		return storageError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", user)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	if !s.LoggedIn() {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
		return nil
	}
	if err := s.Logout(); err != nil {
		return storageError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}
