package portal

import (
	"strings"

	"github.com/benchline/benchline/internal/api"
)

// Catalog holds the loaded project list, the free-text filter, the current
// selection and its detail record. Selections are fenced: every Select
// increments a sequence number, and results carrying a stale fence are
// discarded, so a slow response for a superseded selection can never
// overwrite state belonging to the current one.
//
// Catalog is only ever touched from the UI event loop, so it carries no
// locking.
type Catalog struct {
	projects []api.Project
	filter   string

	selectedID    string
	selectionSeq  uint64
	detail        *api.Project
	detailLoading bool
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

// SetProjects replaces the catalog with the server's list, preserving server
// order. When nothing is selected and the list is non-empty the first entry
// is selected; the returned fence is non-zero in exactly that case so the
// caller can kick off the detail load.
func (c *Catalog) SetProjects(list []api.Project) (selectedID string, fence uint64) {
	c.projects = list
	if c.selectedID != "" {
		// keep the selection if it survived the reload
		for _, p := range list {
			if p.ID == c.selectedID {
				return "", 0
			}
		}
		c.clearSelection()
	}
	if len(list) == 0 {
		return "", 0
	}
	return list[0].ID, c.Select(list[0].ID)
}

// Projects returns the full loaded list in server order.
func (c *Catalog) Projects() []api.Project {
	return c.projects
}

// SetFilter updates the free-text filter. No network involved.
func (c *Catalog) SetFilter(text string) {
	c.filter = text
}

func (c *Catalog) Filter() string {
	return c.filter
}

// Filtered recomputes the visible subsequence from the source list on every
// call: projects whose title or description contains the filter,
// case-insensitive. An empty filter yields the full list.
func (c *Catalog) Filtered() []api.Project {
	q := strings.ToLower(strings.TrimSpace(c.filter))
	if q == "" {
		return c.projects
	}
	var out []api.Project
	for _, p := range c.projects {
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// Select records the new selection and returns its fence. The previously
// loaded detail stays visible until the new detail arrives; per-user
// application state is the roster's to clear, synchronously, at the same
// moment.
func (c *Catalog) Select(id string) uint64 {
	c.selectionSeq++
	c.selectedID = id
	return c.selectionSeq
}

// IsCurrent reports whether fence belongs to the latest selection.
func (c *Catalog) IsCurrent(fence uint64) bool {
	return fence == c.selectionSeq
}

// Fence returns the current selection's fence without disturbing it.
func (c *Catalog) Fence() uint64 {
	return c.selectionSeq
}

func (c *Catalog) SelectedID() string {
	return c.selectedID
}

// Detail returns the loaded detail record for the current selection, or nil
// while none has arrived.
func (c *Catalog) Detail() *api.Project {
	return c.detail
}

// ApplyDetail installs a fetched detail record if its fence is still
// current. Returns false for discarded stale results.
func (c *Catalog) ApplyDetail(fence uint64, p api.Project) bool {
	if !c.IsCurrent(fence) {
		return false
	}
	c.detail = &p
	c.detailLoading = false
	return true
}

func (c *Catalog) SetDetailLoading(loading bool) {
	c.detailLoading = loading
}

func (c *Catalog) DetailLoading() bool {
	return c.detailLoading
}

// Remove drops a project locally after a successful delete, clearing the
// selection when it pointed at the removed entry.
func (c *Catalog) Remove(id string) {
	kept := c.projects[:0]
	for _, p := range c.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.projects = kept
	if c.selectedID == id {
		c.clearSelection()
	}
}

// ClearSelection drops the selection and its detail, e.g. after the server
// reports the selected project no longer exists.
func (c *Catalog) ClearSelection() {
	c.clearSelection()
}

func (c *Catalog) clearSelection() {
	c.selectionSeq++
	c.selectedID = ""
	c.detail = nil
	c.detailLoading = false
}

// ProjectByID returns the list entry with the given id, or nil.
func (c *Catalog) ProjectByID(id string) *api.Project {
	for i := range c.projects {
		if c.projects[i].ID == id {
			return &c.projects[i]
		}
	}
	return nil
}
