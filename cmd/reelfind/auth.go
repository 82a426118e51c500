package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and print a session token",
	Long: `Log in and print a session token.

The token is printed to stdout; export it for later commands:

  export REELFIND_TOKEN=$(reelfind login you@example.com)`,
	Args: cobra.ExactArgs(1),
	RunE: runLoginCmd,
}

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create an account and print a session token",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegisterCmd,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoamiCmd,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)

	registerCmd.Flags().String("name", "", "Display name")
}

// readPassword prompts without echoing.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(password), nil
}

type authResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	} `json:"user"`
}

func runLoginCmd(cmd *cobra.Command, args []string) error {
	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	client := NewClient(serverURL, "")
	var res authResult
	err = client.post("/api/v1/auth/login", map[string]string{
		"email":    args[0],
		"password": password,
	}, &res)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if jsonOutput {
		printJSON(res)
		return nil
	}
	fmt.Println(res.Token)
	return nil
}

func runRegisterCmd(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	client := NewClient(serverURL, "")
	var res authResult
	err = client.post("/api/v1/auth/register", map[string]string{
		"email":       args[0],
		"displayName": name,
		"password":    password,
	}, &res)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if jsonOutput {
		printJSON(res)
		return nil
	}
	fmt.Println(res.Token)
	return nil
}

func runWhoamiCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, authToken)

	var user struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	}
	if err := client.get("/api/v1/auth/me", &user); err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	if jsonOutput {
		printJSON(user)
		return nil
	}
	if user.DisplayName != "" {
		fmt.Printf("%s <%s>\n", user.DisplayName, user.Email)
	} else {
		fmt.Println(user.Email)
	}
	return nil
}
