package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pennyjar/pennyjar/internal/cli"
	"github.com/pennyjar/pennyjar/internal/model"
	"github.com/pennyjar/pennyjar/internal/storage"
)

func profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage user profiles and switch between them",
	}

	cmd.AddCommand(profilesListCmd())
	cmd.AddCommand(profilesCreateCmd())
	cmd.AddCommand(profilesSwitchCmd())
	cmd.AddCommand(profilesUpdateCmd())
	cmd.AddCommand(profilesDeleteCmd())
	cmd.AddCommand(profilesExportCmd())
	cmd.AddCommand(profilesImportCmd())

	return cmd
}

func profilesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cli.Title("Profiles")
			for _, p := range store.GetProfiles(ctx) {
				marker := "  "
				if p.IsActive {
					marker = cli.SuccessStyle.Render("* ")
				}
				fmt.Printf("%s%s  %s\n", marker, cli.BoldStyle.Render(p.Name), cli.SubtleStyle.Render(p.ID))
			}
			return nil
		},
	}
}

func profilesCreateCmd() *cobra.Command {
	var email, avatar string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a profile and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			profile, err := store.CreateProfile(ctx, args[0], email, avatar)
			if err != nil {
				return err
			}
			cli.Success("created profile %q (%s), now active", profile.Name, profile.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar identifier")
	return cmd
}

func profilesSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <profile-id>",
		Short: "Switch the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SetActiveProfile(ctx, args[0]); err != nil {
				return err
			}
			cli.Success("switched to profile %s", args[0])
			return nil
		},
	}
}

func profilesUpdateCmd() *cobra.Command {
	var nameFlag, emailFlag, avatarFlag string

	cmd := &cobra.Command{
		Use:   "update <profile-id>",
		Short: "Update a profile's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patch := profilePatchFromFlags(cmd, nameFlag, emailFlag, avatarFlag)

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			profile, err := store.UpdateProfile(ctx, args[0], patch)
			if err != nil {
				return err
			}
			if profile == nil {
				cli.Error("profile %s not found", args[0])
				return nil
			}
			cli.Success("updated profile %q", profile.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "new name")
	cmd.Flags().StringVar(&emailFlag, "email", "", "new email")
	cmd.Flags().StringVar(&avatarFlag, "avatar", "", "new avatar")
	return cmd
}

func profilesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <profile-id>",
		Short: "Delete a profile and its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteProfile(ctx, args[0]); err != nil {
				return err
			}
			cli.Success("deleted profile %s", args[0])
			return nil
		},
	}
}

func profilesExportCmd() *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "export <profile-id>",
		Short: "Export a profile's data to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			snapshot, err := store.ExportProfileData(ctx, args[0])
			if err != nil {
				return err
			}

			out := outFlag
			if out == "" {
				out = args[0] + ".json"
			}

			encoded, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode profile data: %w", err)
			}

			f, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			bar := progressbar.DefaultBytes(int64(len(encoded)), "exporting")
			if _, err := io.Copy(io.MultiWriter(f, bar), bytes.NewReader(encoded)); err != nil {
				_ = f.Close()
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			cli.Success("exported %d keys to %s", len(snapshot), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&outFlag, "out", "", "output file (default <profile-id>.json)")
	return cmd
}

func profilesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <profile-id> <file>",
		Short: "Replace a profile's data from a JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[1], err)
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[1], err)
			}

			var buf bytes.Buffer
			bar := progressbar.DefaultBytes(info.Size(), "importing")
			if _, err := io.Copy(io.MultiWriter(&buf, bar), f); err != nil {
				return fmt.Errorf("failed to read %s: %w", args[1], err)
			}

			var snapshot model.ProfileSnapshot
			if err := json.Unmarshal(buf.Bytes(), &snapshot); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[1], err)
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ImportProfileData(ctx, args[0], snapshot); err != nil {
				return err
			}
			cli.Success("imported %d keys into profile %s", len(snapshot), args[0])
			return nil
		},
	}
}

func profilePatchFromFlags(cmd *cobra.Command, name, email, avatar string) (patch storage.ProfilePatch) {
	if cmd.Flags().Changed("name") {
		patch.Name = &name
	}
	if cmd.Flags().Changed("email") {
		patch.Email = &email
	}
	if cmd.Flags().Changed("avatar") {
		patch.Avatar = &avatar
	}
	return patch
}
