package wm

import (
	"errors"
	"fmt"
)

// CheckInvariants reports every structural violation in s. The Booting flag
// is not checked. A nil catalog skips the minimum-size check.
func CheckInvariants(s State, catalog Catalog) error {
	var errs []error

	if s.ActiveID != "" {
		w, ok := s.Window(s.ActiveID)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("active window %q does not exist", s.ActiveID))
		case !w.Visible():
			errs = append(errs, fmt.Errorf("active window %q is %s", s.ActiveID, w.Status()))
		}
	}

	stack := make(map[int]string, len(s.Windows))
	ids := make(map[string]bool, len(s.Windows))
	for _, w := range s.Windows {
		if ids[w.ID] {
			errs = append(errs, fmt.Errorf("duplicate window id %q", w.ID))
		}
		ids[w.ID] = true

		if other, dup := stack[w.StackOrder]; dup {
			errs = append(errs, fmt.Errorf("windows %q and %q share stack order %d", other, w.ID, w.StackOrder))
		}
		stack[w.StackOrder] = w.ID

		if w.StackOrder >= s.NextStackOrder {
			errs = append(errs, fmt.Errorf("window %q stack order %d not below next %d", w.ID, w.StackOrder, s.NextStackOrder))
		}
		if w.Serial >= s.NextSerial {
			errs = append(errs, fmt.Errorf("window %q serial %d not below next %d", w.ID, w.Serial, s.NextSerial))
		}

		if catalog == nil {
			continue
		}
		desc, ok := catalog.Lookup(w.AppID)
		if !ok {
			errs = append(errs, fmt.Errorf("window %q belongs to unknown application %q", w.ID, w.AppID))
			continue
		}
		if w.Size.Width < desc.MinSize.Width || w.Size.Height < desc.MinSize.Height {
			errs = append(errs, fmt.Errorf("window %q size %v below minimum %v", w.ID, w.Size, desc.MinSize))
		}
	}

	return errors.Join(errs...)
}
