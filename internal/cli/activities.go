package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newActivitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "activities",
		Aliases: []string{"ls"},
		Short:   "List activities and their participants",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Activities

			if err := client.Get(cmd.Context(), "/activities", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newSignupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup <activity> <email>",
		Short: "Sign a student up for an activity (no credentials)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MessageResult

			if err := client.Post(cmd.Context(), openPath(args[0], "signup", args[1]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <activity> <email>",
		Short: "Remove a student from an activity (no credentials)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MessageResult

			if err := client.Delete(cmd.Context(), openPath(args[0], "unregister", args[1]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

// openPath builds /activities/{name}/{action}?email=
func openPath(activity, action, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/" + action + "?" + url.Values{"email": {email}}.Encode()
}
