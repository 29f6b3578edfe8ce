package dto

import "time"

type SubjectOutput struct {
	Name      string
	CreatedAt time.Time
}

type RenameOutput struct {
	From            string
	To              string
	SessionsUpdated int
}

type DeleteInput struct {
	Name    string
	Cascade bool
}

type DeleteOutput struct {
	Name            string
	SessionsRemoved int
}
