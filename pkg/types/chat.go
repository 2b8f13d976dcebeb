// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ChatRecord is one question/answer pair extracted from an editor's
// interactive session history.
type ChatRecord struct {
	// Question is the text the user sent (message.text).
	Question string `json:"question" yaml:"question"`

	// Answer is the first response part returned for that message (response[0].value).
	Answer string `json:"answer" yaml:"answer"`
}

// Workspace describes one entry of an editor workspaceStorage directory.
type Workspace struct {
	// Name is the directory name, usually a hash chosen by the editor.
	Name string `json:"name" yaml:"name"`

	// IsDirectory reports whether the entry is a directory.
	IsDirectory bool `json:"is_directory" yaml:"is_directory"`

	// Folder is the project folder or workspace file URI recorded in
	// workspace.json. Empty when the file is missing or unreadable.
	Folder string `json:"folder,omitempty" yaml:"folder,omitempty"`

	// StatePath is the path to the state.vscdb file. Empty when the
	// workspace has no state database.
	StatePath string `json:"state_path,omitempty" yaml:"state_path,omitempty"`
}

// HasState reports whether the workspace carries a state database.
func (w Workspace) HasState() bool {
	return w.StatePath != ""
}

// CachedChats is a snapshot of the chats extracted from one state database.
type CachedChats struct {
	Chats []ChatRecord `json:"chats"`

	// LastUpdated is when the snapshot was written.
	LastUpdated time.Time `json:"last_updated"`

	// SourceModTime is the modification time of the state database the
	// snapshot was taken from. A snapshot is stale once it differs.
	SourceModTime time.Time `json:"source_mod_time"`
}
