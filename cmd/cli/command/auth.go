package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"comboshare/cmd/cli/authentication"
	"comboshare/internal/microservices/http-api/dto"
)

// auth.go handles register, login, logout and whoami.

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the comboshare API. The session token is kept in the OS keyring.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.RegisterRequest
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")
		req.Name, _ = cmd.Flags().GetString("name")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		user, err := GetClient().Register(ctx, &req)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Println(success("✓ Registration successful! Please login to continue."))
		fmt.Printf("User ID: %s\n", user.ID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		res, err := GetClient().Login(ctx, &req)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if err := authentication.StoreToken(&authentication.StoredCredentials{
			Token:     res.Token,
			Email:     res.User.Email,
			ExpiresAt: res.ExpiresAt,
		}); err != nil {
			fmt.Println(warn("! could not save token to keyring: " + err.Error()))
			fmt.Printf("export %s=%s\n", authentication.TokenEnv, res.Token)
		}

		fmt.Println(success("✓ Logged in as " + res.User.Name))
		fmt.Println(faint("session expires " + res.ExpiresAt.Local().Format("2006-01-02 15:04")))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and forget the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := GetAuthenticatedClient()
		if err == nil {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			if err := c.Logout(ctx); err != nil {
				fmt.Println(warn("! server logout failed: " + err.Error()))
			}
		}
		if err := authentication.DeleteToken(); err != nil {
			return fmt.Errorf("failed to clear token: %w", err)
		}
		fmt.Println(success("✓ Logged out."))
		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the logged in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		user, err := c.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>\n", bold(user.Name), user.Email)
		fmt.Printf("ID: %s\n", user.ID)
		if user.IsAdmin {
			fmt.Println(warn("admin"))
		}
		return nil
	},
}

func init() {
	authCmd.AddCommand(registerCmd, loginCmd, logoutCmd, meCmd)

	registerCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	registerCmd.Flags().StringP("password", "p", "", "Password for the new account")
	registerCmd.Flags().StringP("name", "n", "", "Display name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("name")

	loginCmd.Flags().StringP("email", "e", "", "Account email")
	loginCmd.Flags().StringP("password", "p", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
