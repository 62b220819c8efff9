package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword reads without echo from a terminal, or one line otherwise.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(b), err
	}
	return readLine(os.Stdin)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func registerCmd() *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}
			c, sess, err := newClient()
			if err != nil {
				return err
			}
			res, err := c.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			sess.Server, sess.Email, sess.Token = serverURL, res.User.Email, res.Token
			if err := sess.save(); err != nil {
				return err
			}
			fmt.Println(successStyle.Sprintf("Welcome, %s!", res.User.Name))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func loginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}
			c, sess, err := newClient()
			if err != nil {
				return err
			}
			res, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			sess.Server, sess.Email, sess.Token = serverURL, res.User.Email, res.Token
			if err := sess.save(); err != nil {
				return err
			}
			fmt.Println(successStyle.Sprintf("Logged in as %s", res.User.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(*cobra.Command, []string) error {
			sess, err := loadSession(sessionPath)
			if err != nil {
				return err
			}
			if err := sess.clear(); err != nil {
				return err
			}
			fmt.Println(subtleStyle.Sprint("Logged out"))
			return nil
		},
	}
}
