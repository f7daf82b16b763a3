package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/coursetrack/internal/models"
)

var (
	_ list.Item = sectionItem{}
	_ list.Item = lessonItem{}
)

// sectionItem wraps [models.Section] and its progress to implement [list.Item].
type sectionItem struct {
	section  models.Section
	progress models.Progress
	active   bool
}

func (i sectionItem) FilterValue() string { return i.section.Title }
func (i sectionItem) Title() string {
	if i.active {
		return "▸ " + i.section.Title
	}
	return "  " + i.section.Title
}
func (i sectionItem) Description() string {
	return fmt.Sprintf("  %d/%d watched", i.progress.Watched, i.progress.Total)
}

// lessonItem wraps [models.Video] to implement [list.Item].
type lessonItem struct {
	video   models.Video
	watched bool
	comment bool
}

func (i lessonItem) FilterValue() string { return i.video.Title }
func (i lessonItem) Title() string {
	mark := "[ ]"
	if i.watched {
		mark = "[x]"
	}
	return fmt.Sprintf("%s %s", mark, i.video.Title)
}
func (i lessonItem) Description() string {
	desc := fmt.Sprintf("    %d links • %d commands", len(i.video.Links), len(i.video.Commands))
	if i.comment {
		desc += " • commented"
	}
	return desc
}
