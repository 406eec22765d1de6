// ABOUTME: Sync status reporting for the charm backend
// ABOUTME: Collects server, account and key information for display

package charm

import (
	"fmt"
	"io"
)

// Status describes the charm connection and what is stored locally.
type Status struct {
	Host        string
	AutoSync    bool
	Connected   bool
	ID          string
	Keys        int
	HasSnapshot bool
}

// Status gathers the current sync status. Being offline is not an error.
func (c *Client) Status() Status {
	cfg := c.Config()
	st := Status{Host: cfg.Host, AutoSync: cfg.AutoSync}

	if id, err := c.ID(); err == nil {
		st.Connected = true
		st.ID = id
	}

	if keys, err := c.KeysWithPrefix([]byte(KeyPrefix)); err == nil {
		st.Keys = len(keys)
		for _, k := range keys {
			if string(k) == StateKey {
				st.HasSnapshot = true
			}
		}
	}
	return st
}

// WriteStatus renders a status report.
func WriteStatus(w io.Writer, st Status) {
	fmt.Fprintln(w, "Charm Sync Status")
	fmt.Fprintln(w, "─────────────────")
	fmt.Fprintf(w, "Server:    %s\n", st.Host)
	fmt.Fprintf(w, "Auto-sync: %v\n", st.AutoSync)
	fmt.Fprintf(w, "Keys:      %d\n", st.Keys)
	fmt.Fprintf(w, "Snapshot:  %v\n", st.HasSnapshot)

	if !st.Connected {
		fmt.Fprintln(w, "\nStatus: Not connected")
		fmt.Fprintln(w, "\nCharm uses SSH keys for authentication - no login required!")
		return
	}
	fmt.Fprintln(w, "\nStatus: Connected to Charm Cloud")
	fmt.Fprintf(w, "ID:        %s\n", st.ID)
}
