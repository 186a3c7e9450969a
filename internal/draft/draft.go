// ABOUTME: In-progress deployment configuration and its validation rules
// ABOUTME: Pure data model with no I/O; mutated only by the wizard

package draft

import (
	"errors"

	"github.com/enochcodes/orchestra/cli/internal/client"
)

// SourceKind is the closed set of deployment sources. Exactly one is
// active per draft; fields of inactive variants never reach the wire.
type SourceKind int

const (
	SourceGit SourceKind = iota
	SourceManualPath
	SourceDockerImage
)

// String returns the wire name of a SourceKind.
func (k SourceKind) String() string {
	switch k {
	case SourceGit:
		return "git"
	case SourceManualPath:
		return "manual"
	case SourceDockerImage:
		return "docker_image"
	default:
		return "unknown"
	}
}

// dockerBuildType is the build_type sentinel for pre-built images.
const dockerBuildType = "docker"

// Environment-variable scopes.
const (
	ScopeProduction = "production"
	ScopePreview    = "preview"
)

// Scopes lists the variable scopes in display order.
var Scopes = []string{ScopeProduction, ScopePreview}

// EnvVar is one row of the environment-variable edit buffer. Keys need
// not be unique here; duplicates collapse at submission.
type EnvVar struct {
	Key   string
	Value string
}

// Wizard steps.
const (
	StepSource = iota + 1
	StepStack
	StepConfig
	StepEnvironment
	StepReview
)

// StepCount is the number of wizard steps.
const StepCount = 5

// StepNames are the display names for the progress indicator.
var StepNames = []string{"Source", "Stack", "Config", "Environment", "Review"}

// Draft is the in-progress, not-yet-submitted deployment configuration.
type Draft struct {
	Name      string
	ClusterID uint

	Source      SourceKind
	RepoURL     string
	Branch      string
	DockerImage string
	ManualPath  string

	AppTypeID   string
	FrameworkID string
	BuildCmd    string
	StartCmd    string

	Port   int
	Domain string

	Env map[string][]EnvVar
}

// New creates an empty draft: git source, "main" branch, and one blank
// variable row per scope so the add control has a place to attach.
func New() *Draft {
	return &Draft{
		Source:    SourceGit,
		Branch:    "main",
		AppTypeID: "web_service",
		Env: map[string][]EnvVar{
			ScopeProduction: {{}},
			ScopePreview:    {{}},
		},
	}
}

// Validation errors surfaced by the step guards.
var (
	ErrNameRequired      = errors.New("application name is required")
	ErrRepoRequired      = errors.New("git repository URL is required")
	ErrImageRequired     = errors.New("docker image is required")
	ErrFrameworkRequired = errors.New("select a framework")
	ErrNoCluster         = errors.New("no cluster available; select or create a cluster first")
)

// CanLeave reports whether the draft may advance past the given step.
// Steps three and four have no hard gate; step five is terminal.
func (d *Draft) CanLeave(step int) error {
	switch step {
	case StepSource:
		if d.Name == "" {
			return ErrNameRequired
		}
		// A manual path may stay empty here; the backend resolves it.
		switch d.Source {
		case SourceGit:
			if d.RepoURL == "" {
				return ErrRepoRequired
			}
		case SourceDockerImage:
			if d.DockerImage == "" {
				return ErrImageRequired
			}
		}
		return nil
	case StepStack:
		// The build step is meaningless for a pre-built image.
		if d.Source != SourceDockerImage && d.FrameworkID == "" {
			return ErrFrameworkRequired
		}
		return nil
	default:
		return nil
	}
}

// ApplyFramework selects a framework and overwrites the build and start
// commands with its defaults. One-way: later manual edits stick until a
// different framework is re-selected.
func (d *Draft) ApplyFramework(fw client.Framework) {
	d.FrameworkID = fw.ID
	d.BuildCmd = fw.DefaultBuild
	d.StartCmd = fw.DefaultStart
}

// AddEnvRow appends a blank row to the scope's edit buffer.
func (d *Draft) AddEnvRow(scope string) {
	d.Env[scope] = append(d.Env[scope], EnvVar{})
}

// RemoveEnvRow deletes the row at index i. Removing the last row leaves
// zero rows; a fresh blank row only returns via AddEnvRow.
func (d *Draft) RemoveEnvRow(scope string, i int) {
	rows := d.Env[scope]
	if i < 0 || i >= len(rows) {
		return
	}
	d.Env[scope] = append(rows[:i], rows[i+1:]...)
}

// CollapseEnv folds an edit buffer into a key/value mapping: blank keys
// are dropped and later duplicates overwrite earlier ones.
func CollapseEnv(rows []EnvVar) map[string]string {
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.Key == "" {
			continue
		}
		out[row.Key] = row.Value
	}
	return out
}

// BuildPayload assembles the outbound deployment request. The cluster
// is the explicitly selected one, falling back to the first loaded
// cluster; with neither, it fails locally and no request is issued.
func (d *Draft) BuildPayload(clusters []client.Cluster) (*client.CreateApplicationRequest, error) {
	clusterID := d.ClusterID
	if clusterID == 0 {
		if len(clusters) == 0 {
			return nil, ErrNoCluster
		}
		clusterID = clusters[0].ID
	}

	buildType := d.FrameworkID
	if d.Source == SourceDockerImage {
		buildType = dockerBuildType
	}

	req := &client.CreateApplicationRequest{
		Name:       d.Name,
		ClusterID:  clusterID,
		Namespace:  "default",
		SourceType: d.Source.String(),
		BuildType:  buildType,
		BuildCmd:   d.BuildCmd,
		StartCmd:   d.StartCmd,
		Domain:     d.Domain,
		EnvVars: client.ScopedEnvs{
			ScopeProduction: CollapseEnv(d.Env[ScopeProduction]),
			ScopePreview:    CollapseEnv(d.Env[ScopePreview]),
		},
	}
	if d.Port != 0 {
		port := d.Port
		req.Port = &port
	}

	switch d.Source {
	case SourceGit:
		req.RepoURL = d.RepoURL
		req.Branch = d.Branch
	case SourceDockerImage:
		req.DockerImage = d.DockerImage
	case SourceManualPath:
		req.ManualPath = d.ManualPath
	}

	return req, nil
}

// Reset returns the draft to its initial empty state.
func (d *Draft) Reset() {
	*d = *New()
}
