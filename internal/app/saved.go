package app

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/pkgscout/internal/saved"
)

// runSaved prints one saved list, one name per line. clearList empties the
// list and unsave removes a single name before printing.
func runSaved(c *components, listName, unsave string, clearList bool, out io.Writer) error {
	list, err := saved.ParseList(listName)
	if err != nil {
		return err
	}

	var st saved.State
	switch name := strings.TrimSpace(unsave); {
	case clearList:
		st = c.saved.Clear(list)
		c.logger.Info("saved list cleared", zap.String("list", string(list)))
	case name != "":
		st = c.saved.Remove(list, name)
		c.logger.Info("saved item removed", zap.String("list", string(list)), zap.String("name", name))
	default:
		st = c.saved.State()
	}

	for _, name := range st.Names(list) {
		if _, err := fmt.Fprintln(out, name); err != nil {
			return fmt.Errorf("write saved list: %w", err)
		}
	}
	return nil
}
