package app

type PackRequest struct {
	ProjectRoot     string
	Configuration   string
	VersionTag      string
	EmbedSource     bool
	MinPlatform     string
	RepoRoot        string
	BuildCommand    string
	StrictResources bool
}

type PackResult struct {
	PackageDir    string
	PackagePath   string
	Architectures int
	Violations    int
}

type SyncRequest struct {
	WorkspaceRoot string
	RepoRoot      string
	Configuration string
	Declarations  string
	Strict        bool
}

type SyncResult struct {
	Created []string
	Kept    []string
	Removed []string
	Missed  []string
}

type RestoreRequest struct {
	ProjectRoot string
}

type RestoreResult struct {
	Recovered bool
}

type InspectRequest struct {
	RepoRoot    string
	PackageName string
}

type InspectGroup struct {
	Name     string
	Versions []string
	DirNames []string
}

type InspectResult struct {
	Groups []InspectGroup
}
