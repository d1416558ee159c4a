package domain

// RemoteProject is a Toggl project as listed for mapping configuration.
type RemoteProject struct {
	ID   int64
	Name string
}

// RemoteClient is a Toggl client as listed for mapping configuration.
type RemoteClient struct {
	ID   int64
	Name string
}
