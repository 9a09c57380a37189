package models

import (
	"strings"
	"time"
)

// Target names the repository and the file whose history is scored.
type Target struct {
	Repository string `json:"repository"`
	FilePath   string `json:"file_path"`
}

// Owner returns the part of the repository identifier before the first slash.
func (t Target) Owner() string {
	owner, _, _ := strings.Cut(t.Repository, "/")
	return owner
}

// Name returns the part of the repository identifier after the first slash.
// GitLab subgroups keep their full path here.
func (t Target) Name() string {
	_, name, _ := strings.Cut(t.Repository, "/")
	return name
}

// Commit is a single revision of the target file.
type Commit struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Author  string    `json:"author,omitempty"`
	Date    time.Time `json:"date,omitempty"`
}

// ShortSHA returns the first seven characters of the hash.
func (c Commit) ShortSHA() string {
	if len(c.SHA) <= 7 {
		return c.SHA
	}
	return c.SHA[:7]
}
