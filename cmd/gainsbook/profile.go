// ABOUTME: CLI commands for the local user profile.
// ABOUTME: Supports show and set subcommands.
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/harperreed/gainsbook/internal/viewmodel"
	"github.com/spf13/cobra"
)

var (
	profileUsername    string
	profileDescription string
	profilePicture     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderProfile(cmd.Context(), cmd.OutOrStdout())
	},
}

func renderProfile(ctx context.Context, out io.Writer) error {
	vm := viewmodel.NewProfileViewModel(ctx, gb.Deps())
	defer vm.Close()
	vm.Load()
	if err := await(vm); err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	p := vm.Profile.Value()
	if p == nil {
		fmt.Fprintln(out, "No profile set. Use 'gainsbook profile set --username <name>'.")
		return nil
	}
	bold.Fprintln(out, p.Username)
	if p.Description != "" {
		fmt.Fprintln(out, p.Description)
	}
	if p.PictureURI != "" {
		faint.Fprintf(out, "Picture: %s\n", p.PictureURI)
	}
	return nil
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the profile",
	Long: `Change the profile. Omitted fields keep their current value.

Examples:
  gainsbook profile set --username lifter --description "Three days a week"
  gainsbook profile set --picture file:///home/me/me.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("username") && !flags.Changed("description") && !flags.Changed("picture") {
			return fmt.Errorf("nothing to change (use --username, --description or --picture)")
		}

		vm := viewmodel.NewProfileViewModel(cmd.Context(), gb.Deps())
		defer vm.Close()
		vm.Load()
		if err := await(vm); err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		if flags.Changed("username") || flags.Changed("description") {
			username, description := profileUsername, profileDescription
			if p := vm.Profile.Value(); p != nil {
				if !flags.Changed("username") {
					username = p.Username
				}
				if !flags.Changed("description") {
					description = p.Description
				}
			}
			vm.SetProfile(username, description)
			if err := await(vm); err != nil {
				return fmt.Errorf("failed to save profile: %w", err)
			}
		}
		if flags.Changed("picture") {
			vm.SetProfilePicture(profilePicture)
			if err := await(vm); err != nil {
				return fmt.Errorf("failed to save picture: %w", err)
			}
		}

		success(cmd.OutOrStdout(), "Profile updated")
		return nil
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileUsername, "username", "", "display name")
	profileSetCmd.Flags().StringVar(&profileDescription, "description", "", "short bio")
	profileSetCmd.Flags().StringVar(&profilePicture, "picture", "", "profile picture URI")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}
