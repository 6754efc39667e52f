package cfgrecorder

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"framerec/internal/contracts"
	"framerec/internal/domain/keys"
	"framerec/internal/editor"
	"framerec/internal/models"
	"framerec/internal/utils/logging"
	"framerec/internal/widgets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// StoreProvider returns the store opened for the running command.
type StoreProvider interface {
	Store() (contracts.Store, error)
}

// getRecorder loads a recorder, failing if it does not exist.
func getRecorder(s contracts.Store, name string) (*models.Recorder, error) {
	rec, hasRows, err := s.RecorderStore().GetRecorder(name)
	if err != nil {
		return nil, err
	}
	if !hasRows {
		return nil, fmt.Errorf("no recorder named %q", name)
	}
	return rec, nil
}

// inspect opens rec's editor and runs one pass drawn to the command output.
//
// A nil script draws the recorder read-only.
func inspect(cmd *cobra.Command, s contracts.Store, rec *models.Recorder, script *widgets.Script, noBounds bool) (changed bool, err error) {
	ed, err := editor.Open(s, rec)
	if err != nil {
		return false, err
	}
	defer ed.OnDisable()
	ed.SetShowBounds(!noBounds)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%v)\n", rec.Name, rec.Kind)

	term := widgets.NewTerminal(out, script, viper.GetBool(keys.NoColor))
	changed, err = ed.Inspect(term)
	if err = errors.Join(err, term.Err()); err != nil {
		return changed, err
	}

	if !ed.IsValid() {
		logging.W("Recorder %q is not ready to capture: %v", rec.Name, rec.Settings.Validate())
	}
	return changed, nil
}

// showCategory draws every recorder whose editor is listed under category.
func showCategory(cmd *cobra.Command, sp StoreProvider, category string, noBounds bool) error {
	if category == "" {
		return fmt.Errorf("please enter a --%s", keys.Category)
	}
	kinds := editor.Kinds(category)
	if len(kinds) == 0 {
		return fmt.Errorf("no recorder editors are listed under %q", category)
	}

	s, err := sp.Store()
	if err != nil {
		return err
	}
	recs, err := s.RecorderStore().ListRecorders(time.Time{})
	if err != nil {
		return err
	}

	shown := 0
	for _, rec := range recs {
		if !slices.Contains(kinds, rec.Kind) {
			continue
		}
		if shown > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if _, err := inspect(cmd, s, rec, nil, noBounds); err != nil {
			return fmt.Errorf("recorder %q: %w", rec.Name, err)
		}
		shown++
	}
	if shown == 0 {
		logging.I("No %s recorders stored", category)
	}
	return nil
}

// printRecorders writes a table of recorders.
func printRecorders(w io.Writer, recs []*models.Recorder) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tCATEGORY\tINPUTS\tVALID\tUPDATED")
	for _, r := range recs {
		category, _ := editor.Category(r.Kind)
		inputs := 0
		if r.Settings != nil {
			inputs = len(r.Settings.Base().Inputs)
		}
		fmt.Fprintf(tw, "%s\t%v\t%s\t%d\t%t\t%s\n",
			r.Name, r.Kind, category, inputs, r.IsValid(), r.UpdatedAt.Local().Format(time.DateTime))
	}
	tw.Flush()
}
