package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dori/weekly/internal/app"
	"github.com/dori/weekly/internal/model"
	"github.com/dori/weekly/internal/store"
	"github.com/dori/weekly/internal/view"
)

// shortID is how many id characters the listings print
const shortID = 8

var errAmbiguous = errors.New("ambiguous id")

type quickAdd struct {
	title       string
	description string
	category    model.Category
	day         model.Weekday
	listName    string
}

// parseQuickAdd splits "title @day !category list:name -- description".
// Unknown markers stay part of the title.
func parseQuickAdd(text string, today model.Weekday) quickAdd {
	q := quickAdd{
		category: model.DefaultCategory,
		day:      today,
	}

	if before, after, found := strings.Cut(text, " -- "); found {
		text = before
		q.description = strings.TrimSpace(after)
	}

	var titleParts []string
	for _, word := range strings.Fields(text) {
		switch {
		case strings.HasPrefix(word, "@"):
			if day, ok := model.ParseWeekday(strings.TrimPrefix(word, "@")); ok {
				q.day = day
			} else {
				titleParts = append(titleParts, word)
			}

		case strings.HasPrefix(word, "!"):
			if c, ok := model.ParseCategory(strings.TrimPrefix(word, "!")); ok {
				q.category = c
			} else {
				titleParts = append(titleParts, word)
			}

		case strings.HasPrefix(strings.ToLower(word), "list:") && len(word) > len("list:"):
			q.listName = word[len("list:"):]

		default:
			titleParts = append(titleParts, word)
		}
	}

	q.title = strings.Join(titleParts, " ")
	return q
}

// draft resolves the list name against lists
func (q quickAdd) draft(lists []model.CustomList) (model.Draft, error) {
	d := model.Draft{
		Title:       q.title,
		Description: q.description,
		Category:    q.category,
		Placement:   model.OnDay(q.day),
	}
	if q.listName != "" {
		l, err := findList(lists, q.listName)
		if err != nil {
			return d, err
		}
		d.Placement = model.InList(l.ID)
	}
	return d, nil
}

// findList matches a list by exact id, unique id prefix or name ignoring case
func findList(lists []model.CustomList, ref string) (model.CustomList, error) {
	for _, l := range lists {
		if l.ID == ref || strings.EqualFold(l.Name, ref) {
			return l, nil
		}
	}
	var match []model.CustomList
	for _, l := range lists {
		if strings.HasPrefix(l.ID, ref) {
			match = append(match, l)
		}
	}
	switch len(match) {
	case 0:
		return model.CustomList{}, fmt.Errorf("list %q: %w", ref, store.ErrNotFound)
	case 1:
		return match[0], nil
	default:
		return model.CustomList{}, fmt.Errorf("list %q: %w", ref, errAmbiguous)
	}
}

// findTask matches a task by exact id or unique id prefix
func findTask(tasks []model.Task, ref string) (model.Task, error) {
	var match []model.Task
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			match = append(match, t)
		}
	}
	switch len(match) {
	case 0:
		return model.Task{}, fmt.Errorf("task %q: %w", ref, store.ErrNotFound)
	case 1:
		return match[0], nil
	default:
		return model.Task{}, fmt.Errorf("task %q: %w", ref, errAmbiguous)
	}
}

func short(id string) string {
	if len(id) > shortID {
		return id[:shortID]
	}
	return id
}

func checkbox(t model.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

func writeTask(w io.Writer, t model.Task) {
	fmt.Fprintf(w, "  %s %s  %s (%s)\n", checkbox(t), short(t.ID), t.Title, t.Category)
}

// printStatus writes the last store summary, which describes the mutation just made
func printStatus(w io.Writer, a *app.App) {
	if s, ok := a.Status.Last(); ok {
		if s.Detail != "" {
			fmt.Fprintf(w, "%s: %s\n", s.Title(), s.Detail)
		} else {
			fmt.Fprintln(w, s.Title())
		}
	}
}

func cmdAdd(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	q := parseQuickAdd(strings.Join(args, " "), view.Today(time.Now()))
	d, err := q.draft(a.Store.Lists())
	if err != nil {
		return err
	}
	t, err := a.Store.AddTask(ctx, d)
	if err != nil {
		return err
	}
	printStatus(out, a)
	fmt.Fprintf(out, "id: %s\n", short(t.ID))
	return nil
}

func cmdWeek(_ context.Context, a *app.App, _ []string, out io.Writer) error {
	printWeek(out, a.Store.Tasks(), time.Now())
	return nil
}

// printWeek writes the seven day columns of the week containing now
func printWeek(w io.Writer, tasks []model.Task, now time.Time) {
	fmt.Fprintln(w, view.RangeLabel(now))
	counts := view.Counts(tasks)
	for _, h := range view.Week(now, now) {
		marker := ""
		if h.IsToday {
			marker = "  (today)"
		}
		c := counts[h.Name]
		fmt.Fprintf(w, "\n%s, %s  %d/%d%s\n", h.Name, h.Date.Format("Jan 2"), c.Done, c.Total, marker)
		for _, t := range view.ByDay(tasks, h.Name) {
			writeTask(w, t)
		}
	}
}

func cmdLists(_ context.Context, a *app.App, _ []string, out io.Writer) error {
	printLists(out, a.Store.Tasks(), a.Store.Lists())
	return nil
}

// printLists writes every list with its tasks, then tasks whose list is gone
func printLists(w io.Writer, tasks []model.Task, lists []model.CustomList) {
	if len(lists) == 0 {
		fmt.Fprintln(w, "No lists yet")
	}
	for i, l := range lists {
		if i > 0 {
			fmt.Fprintln(w)
		}
		items := view.ByList(tasks, l.ID)
		fmt.Fprintf(w, "%s  %s (%d)\n", short(l.ID), l.Name, len(items))
		for _, t := range items {
			writeTask(w, t)
		}
	}
	if orphans := view.Orphans(tasks, lists); len(orphans) > 0 {
		fmt.Fprintf(w, "\nMissing list (%d)\n", len(orphans))
		for _, t := range orphans {
			writeTask(w, t)
		}
	}
}

func cmdListAdd(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	l, err := a.Store.AddList(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	printStatus(out, a)
	fmt.Fprintf(out, "id: %s\n", short(l.ID))
	return nil
}

func cmdListRemove(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	l, err := findList(a.Store.Lists(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	if _, _, err := a.Store.RemoveList(ctx, l.ID); err != nil {
		return err
	}
	printStatus(out, a)
	return nil
}

func cmdDone(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	t, err := findTask(a.Store.Tasks(), args[0])
	if err != nil {
		return err
	}
	if _, err := a.Store.ToggleComplete(ctx, t.ID); err != nil {
		return err
	}
	printStatus(out, a)
	return nil
}

func cmdRemove(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	t, err := findTask(a.Store.Tasks(), args[0])
	if err != nil {
		return err
	}
	if _, err := a.Store.RemoveTask(ctx, t.ID); err != nil {
		return err
	}
	printStatus(out, a)
	return nil
}

func cmdMove(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	t, err := findTask(a.Store.Tasks(), args[0])
	if err != nil {
		return err
	}
	target := strings.Join(args[1:], " ")

	before := len(a.Status.Summaries())
	if name, ok := strings.CutPrefix(target, "list:"); ok {
		l, err := findList(a.Store.Lists(), name)
		if err != nil {
			return err
		}
		if _, err := a.Store.MoveTaskToList(ctx, t.ID, l.ID); err != nil {
			return err
		}
	} else {
		day, ok := model.ParseWeekday(target)
		if !ok {
			return fmt.Errorf("unknown day %q", target)
		}
		if _, err := a.Store.MoveTask(ctx, t.ID, day); err != nil {
			return err
		}
	}
	if len(a.Status.Summaries()) == before {
		fmt.Fprintf(out, "%q is already there\n", t.Title)
		return nil
	}
	printStatus(out, a)
	return nil
}
