package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	authApi "buildmart.GO/api/auth"
	"buildmart.GO/model"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "auth:login",
	Short: "Log in and persist the session token",
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		result, err := authApi.New(c).Login(context.Background(), model.Credentials{
			Email:    loginEmail,
			Password: loginPassword,
		})
		if err != nil {
			fail(err)
		}
		if result.User != nil {
			fmt.Printf("Logged in as %s %s (%s)\n", result.User.FirstName, result.User.LastName, result.User.Role)
		} else {
			fmt.Println("Logged in")
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "auth:logout",
	Short: "Log out and drop the persisted session token",
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		if err := authApi.New(c).Logout(context.Background()); err != nil {
			// Session is dropped locally regardless.
			fmt.Printf("Warning: server logout failed: %v\n", err)
		}
		fmt.Println("Logged out")
	},
}

var meCmd = &cobra.Command{
	Use:   "auth:me",
	Short: "Show the current account",
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		user, err := authApi.New(c).Me(context.Background())
		if err != nil {
			fail(err)
		}
		fmt.Printf("%s %s <%s> role=%s\n", user.FirstName, user.LastName, user.Email, user.Role)
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (required)")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(meCmd)
}
