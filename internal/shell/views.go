package shell

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"folioadmin/internal/assets"
	"folioadmin/internal/models"
	"folioadmin/internal/portfolio"
)

const (
	projectsHelp   = "projects (add, edit N, delete N, back)> "
	experienceHelp = "experience (tab N, new NAME, drop, add NAME, sel N, rename NAME, del, back)> "
	aboutHelp      = "about (edit, preview, back)> "
	contactsHelp   = "contacts (sel aN|dN, add, edit, soft, restore, purge, back)> "
)

func (s *Shell) projectsView(ctx context.Context) error {
	for {
		projects, err := s.svc.Projects.List(ctx)
		if err != nil {
			s.report(err)
		}
		fmt.Fprintln(s.out, "\nProjects")
		if len(projects) == 0 {
			fmt.Fprintln(s.out, "  (none)")
		}
		for i, p := range projects {
			fmt.Fprintf(s.out, "  %d. %s", i+1, p.Title)
			if p.Link != nil {
				fmt.Fprintf(s.out, " <%s>", *p.Link)
			}
			if p.HasImage() {
				fmt.Fprintf(s.out, " [image: %s]", *p.ImageURL)
			}
			fmt.Fprintln(s.out)
		}

		line, err := s.readLine(projectsHelp)
		if err != nil {
			return err
		}
		cmd, arg := command(line)
		switch cmd {
		case "add":
			in, closeImage, err := s.readProject(nil)
			if err != nil {
				return err
			}
			if _, err := s.svc.Projects.Create(ctx, s.prompter, in); err != nil {
				s.report(err)
			}
			closeImage()
		case "edit":
			current, ok := pick(projects, arg)
			if !ok {
				s.report(&portfolio.ValidationError{Message: "No project selected for update."})
				continue
			}
			in, closeImage, err := s.readProject(current)
			if err != nil {
				return err
			}
			if _, err := s.svc.Projects.Update(ctx, s.prompter, current.ID, in); err != nil {
				s.report(err)
			}
			closeImage()
		case "delete":
			var id int64
			if p, ok := pick(projects, arg); ok {
				id = p.ID
			}
			if err := s.svc.Projects.Delete(ctx, s.prompter, id); err != nil {
				s.report(err)
			}
		case "back", "b":
			return nil
		case "":
		default:
			fmt.Fprintf(s.out, "Unknown command %q.\n", cmd)
		}
	}
}

// readProject asks for the project fields. When editing, a blank answer
// keeps the current value and "-" clears the link. The returned func
// closes the chosen image file.
func (s *Shell) readProject(current *models.Project) (portfolio.ProjectInput, func(), error) {
	var in portfolio.ProjectInput
	noop := func() {}

	keep := func(label, value string) (string, error) {
		prompt := label + ": "
		if current != nil {
			prompt = label + " [" + value + "]: "
		}
		answer, err := s.readLine(prompt)
		if err != nil {
			return "", err
		}
		if current != nil && strings.TrimSpace(answer) == "" {
			return value, nil
		}
		return answer, nil
	}

	var curTitle, curDesc, curLink string
	if current != nil {
		curTitle, curDesc = current.Title, current.Description
		if current.Link != nil {
			curLink = *current.Link
		}
	}

	var err error
	if in.Title, err = keep("Title", curTitle); err != nil {
		return in, noop, err
	}
	if in.Description, err = keep("Description", curDesc); err != nil {
		return in, noop, err
	}
	if in.Link, err = keep("Link", curLink); err != nil {
		return in, noop, err
	}
	if strings.TrimSpace(in.Link) == "-" {
		in.Link = ""
	}

	path, err := s.readLine("Image path (blank for none): ")
	if err != nil {
		return in, noop, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return in, noop, nil
	}
	if !assets.AllowedExtension(path) {
		s.prompter.Notify(portfolio.NoticeWarning, "Only jpg, jpeg, png and gif images are supported.")
		return in, noop, nil
	}
	f, err := os.Open(path)
	if err != nil {
		s.prompter.Notify(portfolio.NoticeError, "Error loading image: "+err.Error())
		return in, noop, nil
	}
	in.Image = &portfolio.Upload{Name: filepath.Base(path), Body: f}
	return in, func() { f.Close() }, nil
}

func (s *Shell) experienceView(ctx context.Context) error {
	session := portfolio.NewExperienceSession()
	var switchTo string

	for {
		categories, err := s.svc.Experience.ListCategories(ctx)
		if err != nil {
			s.report(err)
		}
		session.Sync(categories)
		if switchTo != "" {
			session.Switch(switchTo)
			switchTo = ""
		}

		fmt.Fprintln(s.out, "\nExperience")
		for i, c := range session.Categories() {
			if c == session.Active() {
				fmt.Fprintf(s.out, "  %d:[%s]", i+1, c)
			} else {
				fmt.Fprintf(s.out, "  %d: %s ", i+1, c)
			}
		}
		fmt.Fprintln(s.out)

		var entries []models.Experience
		if active := session.Active(); active != "" {
			if entries, err = s.svc.Experience.ListByCategory(ctx, active); err != nil {
				s.report(err)
			}
		}
		selected, hasSelection := session.Selected()
		for i, e := range entries {
			marker := " "
			if hasSelection && e.ID == selected {
				marker = "*"
			}
			fmt.Fprintf(s.out, " %s%d. %s\n", marker, i+1, e.Name)
		}

		line, err := s.readLine(experienceHelp)
		if err != nil {
			return err
		}
		cmd, arg := command(line)
		switch cmd {
		case "tab":
			name := arg
			if c, ok := pick(session.Categories(), arg); ok {
				name = *c
			}
			if !session.Switch(name) {
				fmt.Fprintf(s.out, "No category %q.\n", arg)
			}
		case "new":
			if err := s.svc.Experience.AddCategory(ctx, s.prompter, arg); err != nil {
				s.report(err)
			} else {
				switchTo = strings.TrimSpace(arg)
			}
		case "drop":
			if err := s.svc.Experience.DeleteCategory(ctx, s.prompter, session.Active()); err != nil {
				s.report(err)
			}
		case "add":
			if _, err := s.svc.Experience.AddExperience(ctx, s.prompter, session.Active(), arg); err != nil {
				s.report(err)
			} else {
				session.ClearSelection()
			}
		case "sel":
			e, ok := pick(entries, arg)
			if !ok {
				fmt.Fprintf(s.out, "No entry %q.\n", arg)
				continue
			}
			session.Select(e.ID)
		case "rename":
			id, _ := session.Selected()
			if _, err := s.svc.Experience.UpdateExperience(ctx, s.prompter, id, arg); err != nil {
				s.report(err)
			} else {
				session.ClearSelection()
			}
		case "del":
			id, _ := session.Selected()
			if err := s.svc.Experience.DeleteExperience(ctx, s.prompter, id); err != nil {
				s.report(err)
			} else {
				session.ClearSelection()
			}
		case "back", "b":
			return nil
		case "":
		default:
			fmt.Fprintf(s.out, "Unknown command %q.\n", cmd)
		}
	}
}

func (s *Shell) aboutView(ctx context.Context) error {
	for {
		content, err := s.svc.About.Load(ctx)
		if err != nil {
			s.report(err)
		}
		fmt.Fprintf(s.out, "\nAbout Me\n%s\n", content)

		line, err := s.readLine(aboutHelp)
		if err != nil {
			return err
		}
		cmd, _ := command(line)
		switch cmd {
		case "edit":
			fmt.Fprintln(s.out, "Enter the new text. End with a line holding a single \".\".")
			text, err := s.readText()
			if err != nil {
				return err
			}
			if err := s.svc.About.Save(ctx, s.prompter, text); err != nil {
				s.report(err)
			}
		case "preview":
			html, err := s.svc.About.PreviewHTML(ctx)
			if err != nil {
				s.report(err)
				continue
			}
			fmt.Fprintln(s.out, html)
		case "back", "b":
			return nil
		case "":
		default:
			fmt.Fprintf(s.out, "Unknown command %q.\n", cmd)
		}
	}
}

func (s *Shell) contactsView(ctx context.Context) error {
	var sel portfolio.ContactSelection

	for {
		contacts, err := s.svc.Contacts.List(ctx)
		if err != nil {
			s.report(err)
			contacts = &portfolio.Contacts{}
		}

		fmt.Fprintln(s.out, "\nActive contacts")
		s.printContacts("a", contacts.Active, sel.Active)
		fmt.Fprintln(s.out, "Deleted contacts")
		s.printContacts("d", contacts.Deleted, sel.Deleted)

		line, err := s.readLine(contactsHelp)
		if err != nil {
			return err
		}
		cmd, arg := command(line)
		switch cmd {
		case "sel":
			arg = strings.ToLower(arg)
			switch {
			case strings.HasPrefix(arg, "a"):
				if c, ok := pick(contacts.Active, arg[1:]); ok {
					sel.SelectActive(c.ID)
					continue
				}
			case strings.HasPrefix(arg, "d"):
				if c, ok := pick(contacts.Deleted, arg[1:]); ok {
					sel.SelectDeleted(c.ID)
					continue
				}
			}
			fmt.Fprintf(s.out, "No contact %q.\n", arg)
		case "add":
			platform, link, err := s.readContact("", "")
			if err != nil {
				return err
			}
			if _, err := s.svc.Contacts.Create(ctx, s.prompter, platform, link); err != nil {
				s.report(err)
			} else {
				sel.Clear()
			}
		case "edit":
			id, ok := sel.Active()
			if !ok {
				s.report(s.svc.Contacts.Update(ctx, s.prompter, 0, "", ""))
				continue
			}
			var current models.Contact
			for _, c := range contacts.Active {
				if c.ID == id {
					current = c
				}
			}
			platform, link, err := s.readContact(current.Platform, current.Link)
			if err != nil {
				return err
			}
			if err := s.svc.Contacts.Update(ctx, s.prompter, id, platform, link); err != nil {
				s.report(err)
			} else {
				sel.Clear()
			}
		case "soft":
			id, _ := sel.Active()
			s.contactAction(&sel, s.svc.Contacts.SoftDelete(ctx, s.prompter, id))
		case "restore":
			id, _ := sel.Deleted()
			s.contactAction(&sel, s.svc.Contacts.Restore(ctx, s.prompter, id))
		case "purge":
			id, _ := sel.Any()
			s.contactAction(&sel, s.svc.Contacts.HardDelete(ctx, s.prompter, id))
		case "back", "b":
			return nil
		case "":
		default:
			fmt.Fprintf(s.out, "Unknown command %q.\n", cmd)
		}
	}
}

func (s *Shell) contactAction(sel *portfolio.ContactSelection, err error) {
	if err != nil {
		s.report(err)
		return
	}
	sel.Clear()
}

func (s *Shell) printContacts(prefix string, contacts []models.Contact, selected func() (int64, bool)) {
	if len(contacts) == 0 {
		fmt.Fprintln(s.out, "  (none)")
	}
	id, ok := selected()
	for i, c := range contacts {
		marker := " "
		if ok && c.ID == id {
			marker = "*"
		}
		fmt.Fprintf(s.out, " %s%s%d. %s: %s\n", marker, prefix, i+1, c.Platform, c.Link)
	}
}

// readContact asks for platform and link, offering the current values as
// defaults.
func (s *Shell) readContact(platform, link string) (string, string, error) {
	fmt.Fprintf(s.out, "Suggested platforms: %s\n", strings.Join(models.SuggestedPlatforms, ", "))
	p, err := s.readLine(withDefault("Platform", platform))
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(p) == "" {
		p = platform
	}
	l, err := s.readLine(withDefault("Link", link))
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(l) == "" {
		l = link
	}
	return p, l, nil
}

func withDefault(label, value string) string {
	if value == "" {
		return label + ": "
	}
	return label + " [" + value + "]: "
}
