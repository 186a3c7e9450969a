// ABOUTME: Request and response types for the Orchestra API
// ABOUTME: Mirrors the backend's JSON field names

package client

import "time"

// User is the authenticated principal cached alongside the credential.
type User struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
	SystemRole  string `json:"system_role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// UpdateProfileRequest patches mutable principal fields.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// Cluster is the read-only cluster reference used by the picker.
type Cluster struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	CNIPlugin    string `json:"cni_plugin,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type clusterList struct {
	Clusters []Cluster `json:"clusters"`
	Count    int       `json:"count"`
}

// Server is a registered machine.
type Server struct {
	ID        uint   `json:"id"`
	Hostname  string `json:"hostname"`
	IP        string `json:"ip"`
	SSHUser   string `json:"ssh_user"`
	SSHPort   int    `json:"ssh_port"`
	OS        string `json:"os,omitempty"`
	Arch      string `json:"arch,omitempty"`
	CPUCores  int    `json:"cpu_cores,omitempty"`
	RAMBytes  int64  `json:"ram_bytes,omitempty"`
	Status    string `json:"status"`
	Role      string `json:"role"`
	ClusterID *uint  `json:"cluster_id,omitempty"`
}

type serverList struct {
	Servers []Server `json:"servers"`
	Count   int      `json:"count"`
}

// RegisterServerRequest registers a machine for SSH provisioning.
type RegisterServerRequest struct {
	Hostname string `json:"hostname,omitempty"`
	IP       string `json:"ip"`
	SSHUser  string `json:"ssh_user"`
	SSHPort  int    `json:"ssh_port,omitempty"`
	SSHKey   string `json:"ssh_key"`
}

// RegisterServerResponse acknowledges a registration.
type RegisterServerResponse struct {
	ServerID uint   `json:"server_id"`
	Message  string `json:"message"`
}

// ScopedEnvs maps an environment scope (production, preview) to its
// collapsed key/value variables.
type ScopedEnvs map[string]map[string]string

// Application is a deployed workload.
type Application struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	ClusterID   uint       `json:"cluster_id"`
	Cluster     *Cluster   `json:"cluster,omitempty"`
	Namespace   string     `json:"namespace"`
	SourceType  string     `json:"source_type"`
	RepoURL     string     `json:"repo_url,omitempty"`
	Branch      string     `json:"branch,omitempty"`
	DockerImage string     `json:"docker_image,omitempty"`
	ManualPath  string     `json:"manual_path,omitempty"`
	BuildType   string     `json:"build_type"`
	BuildCmd    string     `json:"build_cmd,omitempty"`
	StartCmd    string     `json:"start_cmd,omitempty"`
	EnvVars     ScopedEnvs `json:"env_vars,omitempty"`
	Port        int        `json:"port,omitempty"`
	Domain      string     `json:"domain,omitempty"`
	Replicas    int        `json:"replicas"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

type applicationList struct {
	Applications []Application `json:"applications"`
	Count        int           `json:"count"`
}

// CreateApplicationRequest is the assembled deployment payload.
// Variant fields carry omitempty so only the active source kind's
// fields appear on the wire.
type CreateApplicationRequest struct {
	Name        string     `json:"name"`
	ClusterID   uint       `json:"cluster_id"`
	Namespace   string     `json:"namespace"`
	SourceType  string     `json:"source_type"`
	RepoURL     string     `json:"repo_url,omitempty"`
	Branch      string     `json:"branch,omitempty"`
	DockerImage string     `json:"docker_image,omitempty"`
	ManualPath  string     `json:"manual_path,omitempty"`
	BuildType   string     `json:"build_type"`
	BuildCmd    string     `json:"build_cmd,omitempty"`
	StartCmd    string     `json:"start_cmd,omitempty"`
	Port        *int       `json:"port,omitempty"`
	Domain      string     `json:"domain,omitempty"`
	EnvVars     ScopedEnvs `json:"env_vars"`
}

// Deployment is a single rollout of an application.
type Deployment struct {
	ID            uint         `json:"id"`
	ApplicationID uint         `json:"application_id"`
	Application   *Application `json:"application,omitempty"`
	Version       string       `json:"version"`
	ImageTag      string       `json:"image_tag,omitempty"`
	Status        string       `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Framework is a build/start command template offered during stack
// selection.
type Framework struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DefaultBuild string `json:"default_build"`
	DefaultStart string `json:"default_start"`
}

// AppType groups frameworks by workload category.
type AppType struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Frameworks []Framework `json:"frameworks"`
}

// Metric is one entry of the monitoring overview.
type Metric struct {
	Name    string    `json:"name"`
	Value   float64   `json:"value"`
	Unit    string    `json:"unit,omitempty"`
	Icon    string    `json:"icon,omitempty"`
	History []float64 `json:"history,omitempty"`
}

type monitoringOverview struct {
	Metrics []Metric `json:"metrics"`
}

// Component is one entry of the monitoring status report.
type Component struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Healthy bool   `json:"healthy"`
}

type monitoringStatus struct {
	Components []Component `json:"components"`
}

// Activity is an audit-trail entry.
type Activity struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type activityList struct {
	Activities []Activity `json:"activities"`
	Count      int        `json:"count"`
}
