package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var projectsSkill string

func init() {
	projectsCmd.Flags().StringVar(&projectsSkill, "skill", "", "Only show projects tagged with this skill (case-insensitive)")
	rootCmd.AddCommand(healthCmd, profileCmd, skillsCmd, projectsCmd, searchCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server is up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newClient().Health(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), h)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s at %s\n", h.Status, h.TS)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the full profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newClient().Profile(cmd.Context())
		if err != nil {
			return err
		}
		return outputJSON(cmd.OutOrStdout(), p)
	},
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List skills, highest score first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		skills, err := newClient().TopSkills(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), skills)
		}
		for _, s := range skills {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", s.Name, s.Score)
		}
		return nil
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects, newest first",
	Long: `List projects, newest first.

Examples:
  meapi projects
  meapi projects --skill go`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := newClient().Projects(cmd.Context(), projectsSkill)
		if err != nil {
			return err
		}
		return outputJSON(cmd.OutOrStdout(), list)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search projects, skills and work history",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newClient().Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), res)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Projects (%d)\n", len(res.Projects))
		for _, p := range res.Projects {
			tags := append([]string(nil), p.Skills...)
			sort.Strings(tags)
			fmt.Fprintf(out, "  %s [%s]\n", p.Title, strings.Join(tags, ", "))
		}
		fmt.Fprintf(out, "Skills (%d)\n", len(res.Skills))
		for _, s := range res.Skills {
			fmt.Fprintf(out, "  %s (%d)\n", s.Name, s.Score)
		}
		fmt.Fprintf(out, "Work (%d)\n", len(res.Work))
		for _, w := range res.Work {
			fmt.Fprintf(out, "  %s, %s\n", w.Role, w.Company)
		}
		return nil
	},
}
