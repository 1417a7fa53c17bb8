// Package journal reads the boot list and kernel power transitions from the
// systemd journal by running journalctl.
//
// Both calls return a complete snapshot or an error wrapping ErrJournal; they
// never exit the process. Malformed rows are counted and skipped.
package journal
