package cli

import (
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check teacher credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := creds.validate(); err != nil {
				return err
			}

			req := map[string]string{
				"username": creds.Username,
				"password": creds.Password,
			}
			var result MessageResult

			if err := client.Post(cmd.Context(), "/login", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	addCredentialFlags(cmd, &creds)
	return cmd
}

func newRegisterCmd() *cobra.Command {
	return newStudentCmd("register <activity> <email>", "Register a student as a teacher", "/register")
}

func newUnregisterCmd() *cobra.Command {
	return newStudentCmd("unregister <activity> <email>", "Unregister a student as a teacher", "/unregister")
}

func newStudentCmd(use, short, path string) *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := creds.validate(); err != nil {
				return err
			}

			req := map[string]string{
				"username":      creds.Username,
				"password":      creds.Password,
				"activity_name": args[0],
				"email":         args[1],
			}
			var result MessageResult

			if err := client.Post(cmd.Context(), path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	addCredentialFlags(cmd, &creds)
	return cmd
}
