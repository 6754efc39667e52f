// Package cfgrecorder sets up Cobra recorder commands.
package cfgrecorder

import (
	"errors"
	"fmt"
	"time"

	cfgflags "framerec/internal/cfg/flags"
	"framerec/internal/domain/enums"
	"framerec/internal/domain/keys"
	"framerec/internal/models"
	"framerec/internal/utils/logging"
	"framerec/internal/widgets"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"
)

// InitRecorderCmds is the entrypoint for initializing recorder commands.
func InitRecorderCmds(sp StoreProvider) []*cobra.Command {
	return []*cobra.Command{
		newRecorderCmd(sp),
		showRecorderCmd(sp),
		editRecorderCmd(sp),
		listRecordersCmd(sp),
		deleteRecorderCmd(sp),
		windowCmd(sp),
		videoCmd(sp),
	}
}

// newRecorderCmd adds a recorder and runs a first pass over it.
func newRecorderCmd(sp StoreProvider) *cobra.Command {
	var (
		kindName string
		noBounds bool
	)

	newCmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Add a recorder.",
		Long:  "Add a recorder of the given kind, filled with default settings and inputs.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sp.Store()
			if err != nil {
				return err
			}

			kind, err := enums.ParseRecorderKind(kindName)
			if err != nil {
				return err
			}
			rec, err := models.NewRecorder(args[0], kind)
			if err != nil {
				return err
			}
			if _, err := s.RecorderStore().AddRecorder(rec); err != nil {
				return err
			}

			_, err = inspect(cmd, s, rec, nil, noBounds)
			return err
		},
	}

	newCmd.Flags().StringVar(&kindName, keys.Kind, enums.RecorderImage.String(), "Recorder kind")
	cfgflags.SetEditorFlags(newCmd, &noBounds)
	return newCmd
}

// showRecorderCmd prints a recorder's editor read-only.
func showRecorderCmd(sp StoreProvider) *cobra.Command {
	var noBounds bool

	showCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a recorder.",
		Long:  "Print every section of a recorder's settings.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sp.Store()
			if err != nil {
				return err
			}
			rec, err := getRecorder(s, args[0])
			if err != nil {
				return err
			}
			_, err = inspect(cmd, s, rec, nil, noBounds)
			return err
		},
	}

	cfgflags.SetEditorFlags(showCmd, &noBounds)
	return showCmd
}

// editRecorderCmd runs one scripted pass over a recorder.
func editRecorderCmd(sp StoreProvider) *cobra.Command {
	var (
		assignments []string
		noBounds    bool
	)

	editCmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Edit a recorder.",
		Long:  `Edit a recorder by answering its controls, e.g. --set "Target fps=24" --set "Image Generator=Render Texture".`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(assignments) == 0 {
				return errors.New("nothing to edit, use --set \"Label=value\"")
			}
			script, err := widgets.ParseScript(assignments)
			if err != nil {
				return err
			}

			s, err := sp.Store()
			if err != nil {
				return err
			}
			rec, err := getRecorder(s, args[0])
			if err != nil {
				return err
			}

			changed, err := inspect(cmd, s, rec, script, noBounds)
			if err != nil {
				return err
			}
			for _, label := range script.Unused() {
				logging.W("No control labelled %q was drawn for recorder %q", label, rec.Name)
			}
			if changed {
				logging.S(0, "Saved changes to recorder %q", rec.Name)
			} else {
				logging.I("Recorder %q unchanged", rec.Name)
			}
			return nil
		},
	}

	editCmd.Flags().StringArrayVar(&assignments, keys.Set, nil, "Control answer as Label=value (repeatable)")
	cfgflags.SetEditorFlags(editCmd, &noBounds)
	return editCmd
}

// listRecordersCmd lists stored recorders.
func listRecordersCmd(sp StoreProvider) *cobra.Command {
	var since string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorders.",
		Long:  "List recorders, optionally only those changed since a date.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sp.Store()
			if err != nil {
				return err
			}

			var from time.Time
			if since != "" {
				if from, err = dateparse.ParseAny(since); err != nil {
					return fmt.Errorf("invalid --%s date %q: %w", keys.Since, since, err)
				}
			}

			recs, err := s.RecorderStore().ListRecorders(from)
			if err != nil {
				return err
			}
			printRecorders(cmd.OutOrStdout(), recs)
			return nil
		},
	}

	listCmd.Flags().StringVar(&since, keys.Since, "", "Only list recorders changed at or after this date")
	return listCmd
}

// deleteRecorderCmd deletes a recorder and its inputs.
func deleteRecorderCmd(sp StoreProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a recorder.",
		Long:  "Delete a recorder together with every input attached to it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sp.Store()
			if err != nil {
				return err
			}
			return s.RecorderStore().DeleteRecorder(args[0])
		},
	}
}

// windowCmd shows every recorder whose editor is listed under a category.
func windowCmd(sp StoreProvider) *cobra.Command {
	var (
		category string
		noBounds bool
	)

	winCmd := &cobra.Command{
		Use:   "window",
		Short: "Show recorders by category.",
		Long:  "Show every recorder whose editor is listed under the category.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCategory(cmd, sp, category, noBounds)
		},
	}

	winCmd.Flags().StringVar(&category, keys.Category, "", "Editor category, e.g. Video")
	cfgflags.SetEditorFlags(winCmd, &noBounds)
	return winCmd
}

// videoCmd is the shortcut for the Video category window.
func videoCmd(sp StoreProvider) *cobra.Command {
	var noBounds bool

	vidCmd := &cobra.Command{
		Use:   "video",
		Short: "Show video recorders.",
		Long:  "Show every recorder listed under the Video category.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCategory(cmd, sp, "Video", noBounds)
		},
	}

	cfgflags.SetEditorFlags(vidCmd, &noBounds)
	return vidCmd
}
