package dom

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Snapshot is a declarative page model: which elements exist, which collapsed
// containers they live in, and which controls open those containers. The
// preview CLI and the engine tests use it as their Document.
type Snapshot struct {
	// Route is the path the page is served under.
	Route string `yaml:"route"`

	// Width is the viewport width in logical pixels.
	Width int `yaml:"width"`

	Elements []SnapshotElement `yaml:"elements"`
	Controls []SnapshotControl `yaml:"controls"`

	// OpenContainers lists containers that start out expanded.
	OpenContainers []string `yaml:"open_containers"`
}

// SnapshotElement is one addressable element on the page.
type SnapshotElement struct {
	Selector string `yaml:"selector"`

	// Hidden elements never match a query.
	Hidden bool `yaml:"hidden"`

	// Container names the collapsed container the element sits in; it only
	// matches queries while that container is open.
	Container string `yaml:"container"`
}

// SnapshotControl is a clickable toggle that opens a container.
type SnapshotControl struct {
	Selector string `yaml:"selector"`
	Opens    string `yaml:"opens"`
}

// SnapshotDocument implements Document over a Snapshot. Activating a control
// element opens its container, making the container's children resolvable.
type SnapshotDocument struct {
	mu       sync.Mutex
	snapshot Snapshot
	open     map[string]bool
}

// NewSnapshotDocument builds a live document from a snapshot.
func NewSnapshotDocument(snapshot Snapshot) *SnapshotDocument {
	open := make(map[string]bool, len(snapshot.OpenContainers))
	for _, name := range snapshot.OpenContainers {
		open[name] = true
	}
	return &SnapshotDocument{snapshot: snapshot, open: open}
}

// SampleSnapshot is a bundled forum landing page carrying the elements the
// builtin step lists anchor to, including the collapsed sidebar behind its
// hamburger toggle.
func SampleSnapshot() Snapshot {
	return Snapshot{
		Route: "/latest",
		Elements: []SnapshotElement{
			{Selector: ".topic-list"},
			{Selector: "#search-button"},
			{Selector: ".sidebar-section[data-section-name='categories']", Container: "hamburger"},
			{Selector: ".sign-up-button"},
			{Selector: "#create-topic"},
			{Selector: "#current-user"},
		},
		Controls: []SnapshotControl{
			{Selector: "#toggle-hamburger-menu", Opens: "hamburger"},
		},
	}
}

// LoadSnapshot reads a snapshot document from a YAML file.
func LoadSnapshot(path string) (*SnapshotDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return NewSnapshotDocument(snapshot), nil
}

// Route returns the snapshot's page path.
func (d *SnapshotDocument) Route() string {
	return d.snapshot.Route
}

// ViewportWidth implements Document.
func (d *SnapshotDocument) ViewportWidth() int {
	return d.snapshot.Width
}

// Query implements Document with exact selector matching. Controls are
// addressable like any element.
func (d *SnapshotDocument) Query(selector string) (Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, el := range d.snapshot.Elements {
		if el.Selector != selector || el.Hidden {
			continue
		}
		if el.Container != "" && !d.open[el.Container] {
			continue
		}
		return &snapshotElement{doc: d, selector: selector}, true
	}

	for _, control := range d.Controls() {
		if control.Selector == selector {
			return &snapshotElement{doc: d, selector: selector, opens: control.Opens}, true
		}
	}

	return nil, false
}

// Controls returns the snapshot's declared controls.
func (d *SnapshotDocument) Controls() []SnapshotControl {
	return d.snapshot.Controls
}

// ContainerOpen reports whether a named container is currently expanded.
func (d *SnapshotDocument) ContainerOpen(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open[name]
}

type snapshotElement struct {
	doc      *SnapshotDocument
	selector string
	opens    string
}

func (e *snapshotElement) Selector() string {
	return e.selector
}

func (e *snapshotElement) Activate() {
	if e.opens == "" {
		return
	}
	e.doc.mu.Lock()
	e.doc.open[e.opens] = true
	e.doc.mu.Unlock()
}
