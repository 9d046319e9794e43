// Package ui implements the line-oriented terminal frontend. It owns
// stdout; everything else logs to stderr.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/smashmate/smashmate/pkg/api"
	"github.com/smashmate/smashmate/pkg/lobby"
	"github.com/smashmate/smashmate/pkg/model"
	"github.com/smashmate/smashmate/pkg/session"
	"github.com/smashmate/smashmate/pkg/social"
)

// App is the interactive shell. Commands act on the session manager
// and API client; entering a lobby switches to a chat mode backed by a
// lobby engine until the user types /back.
type App struct {
	session  *session.Manager
	api      *api.Client
	poll     time.Duration
	debounce time.Duration

	in *bufio.Scanner

	// outMu serializes writes to out: in chat mode the lobby engine's
	// poll goroutine prints incoming messages while the main goroutine
	// prints prompts and send errors.
	outMu sync.Mutex
	out   io.Writer
}

// New builds the shell around already-initialized dependencies.
func New(sess *session.Manager, client *api.Client, in io.Reader, out io.Writer, poll, debounce time.Duration) *App {
	return &App{
		session:  sess,
		api:      client,
		poll:     poll,
		debounce: debounce,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) readLine(prompt string) (string, bool) {
	a.printf("%s", prompt)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// Run reads commands until EOF, "quit", or context cancellation.
func (a *App) Run(ctx context.Context) error {
	if u := a.session.User(); u != nil {
		a.printf("signed in as %s\n", u.Username)
	} else {
		a.printf("not signed in; try: login, register\n")
	}
	for ctx.Err() == nil {
		line, ok := a.readLine("> ")
		if !ok {
			return a.in.Err()
		}
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		if err := a.dispatch(ctx, cmd, rest); err != nil {
			a.printf("error: %s\n", userMessage(err))
		}
	}
	return ctx.Err()
}

// userMessage keeps server-reported messages verbatim and softens
// everything else.
func userMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if api.IsTransport(err) {
		return "could not reach the server, check your connection"
	}
	return err.Error()
}

func (a *App) dispatch(ctx context.Context, cmd, rest string) error {
	switch cmd {
	case "help":
		a.help()
		return nil
	case "login":
		return a.login(ctx)
	case "register":
		return a.register(ctx)
	case "logout":
		a.session.Logout()
		a.printf("signed out\n")
		return nil
	case "whoami":
		return a.whoami()
	case "update":
		return a.updateProfile(ctx, rest)
	case "delete-account":
		return a.deleteAccount(ctx)
	case "lobbies":
		return a.myLobbies(ctx)
	case "open":
		return a.openLobbies(ctx)
	case "create":
		return a.createLobby(ctx)
	case "join":
		return a.requireArg(rest, "join <lobby-id>", func(id string) error {
			if err := a.api.JoinLobby(ctx, id); err != nil {
				return err
			}
			a.printf("joined %s\n", id)
			return nil
		})
	case "leave":
		return a.requireArg(rest, "leave <lobby-id>", func(id string) error {
			if err := a.api.LeaveLobby(ctx, id); err != nil {
				return err
			}
			a.printf("left %s\n", id)
			return nil
		})
	case "delete":
		return a.requireArg(rest, "delete <lobby-id>", func(id string) error {
			if err := a.api.DeleteLobby(ctx, id); err != nil {
				return err
			}
			a.printf("deleted %s\n", id)
			return nil
		})
	case "invite":
		fields := strings.Fields(rest)
		if len(fields) != 2 {
			return fmt.Errorf("usage: invite <lobby-id> <user-id>")
		}
		if err := a.api.InviteToLobby(ctx, fields[0], fields[1]); err != nil {
			return err
		}
		a.printf("invited\n")
		return nil
	case "enter":
		return a.requireArg(rest, "enter <lobby-id>", func(id string) error {
			return a.enterLobby(ctx, id)
		})
	case "friends":
		return a.friends(ctx)
	case "requests":
		return a.friendRequests(ctx)
	case "accept":
		return a.requireArg(rest, "accept <request-id>", func(id string) error {
			return a.api.AcceptFriendRequest(ctx, id)
		})
	case "reject":
		return a.requireArg(rest, "reject <request-id>", func(id string) error {
			return a.api.RejectFriendRequest(ctx, id)
		})
	case "add-friend":
		return a.requireArg(rest, "add-friend <user-id>", func(id string) error {
			if err := a.api.SendFriendRequest(ctx, id); err != nil {
				return err
			}
			a.printf("request sent\n")
			return nil
		})
	case "profile":
		return a.requireArg(rest, "profile <user-id>", func(id string) error {
			return a.publicProfile(ctx, id)
		})
	case "search":
		return a.search(ctx)
	case "roster":
		return a.roster(ctx, rest)
	case "likes":
		return a.likes(ctx)
	case "like":
		return a.requireArg(rest, "like <character>", func(name string) error {
			return a.toggleLike(ctx, name)
		})
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func (a *App) requireArg(rest, usage string, fn func(string) error) error {
	if rest == "" {
		return fmt.Errorf("usage: %s", usage)
	}
	return fn(rest)
}

func (a *App) help() {
	a.printf(`account:  login register logout whoami update delete-account
lobbies:  lobbies open create join leave delete invite enter
friends:  friends requests accept reject add-friend profile search
roster:   roster likes like
other:    help quit
`)
}

func (a *App) login(ctx context.Context) error {
	email, ok := a.readLine("email: ")
	if !ok {
		return nil
	}
	password, ok := a.readLine("password: ")
	if !ok {
		return nil
	}
	if err := a.session.Login(ctx, email, password); err != nil {
		return err
	}
	a.printf("signed in as %s\n", a.session.User().Username)
	return nil
}

func (a *App) register(ctx context.Context) error {
	username, ok := a.readLine("username: ")
	if !ok {
		return nil
	}
	email, ok := a.readLine("email: ")
	if !ok {
		return nil
	}
	password, ok := a.readLine("password: ")
	if !ok {
		return nil
	}
	if err := a.session.Register(ctx, username, email, password); err != nil {
		return err
	}
	a.printf("welcome, %s\n", a.session.User().Username)
	return nil
}

func (a *App) whoami() error {
	u := a.session.User()
	if u == nil {
		return session.ErrNotAuthenticated
	}
	a.printf("%s <%s>\n", u.Username, u.Email)
	if u.Main != nil {
		a.printf("main: %s\n", *u.Main)
	}
	if u.Description != nil {
		a.printf("%s\n", *u.Description)
	}
	return nil
}

func (a *App) updateProfile(ctx context.Context, rest string) error {
	field, value, _ := strings.Cut(rest, " ")
	value = strings.TrimSpace(value)
	var update model.ProfileUpdate
	switch field {
	case "username":
		update.Username = &value
	case "main":
		update.Main = &value
	case "description":
		update.Description = &value
	case "image":
		update.ProfileImage = &value
	default:
		return fmt.Errorf("usage: update username|main|description|image <value>")
	}
	if err := a.session.UpdateProfile(ctx, update); err != nil {
		return err
	}
	a.printf("profile updated\n")
	return nil
}

func (a *App) deleteAccount(ctx context.Context) error {
	confirm, ok := a.readLine("type DELETE to remove your account: ")
	if !ok || confirm != "DELETE" {
		a.printf("cancelled\n")
		return nil
	}
	if err := a.session.DeleteAccount(ctx); err != nil {
		return err
	}
	a.printf("account deleted\n")
	return nil
}

func (a *App) printLobbies(lobbies []model.Lobby) {
	if len(lobbies) == 0 {
		a.printf("(none)\n")
		return
	}
	for _, l := range lobbies {
		a.printf("%s  %-24s %d/%d  %s  owner=%s\n",
			l.ID, l.Name, len(l.Members), l.MaxMembers, l.Status, l.Owner.Username)
	}
}

func (a *App) myLobbies(ctx context.Context) error {
	lobbies, err := a.api.MyLobbies(ctx)
	if err != nil {
		return err
	}
	a.printLobbies(lobbies)
	return nil
}

func (a *App) openLobbies(ctx context.Context) error {
	lobbies, err := a.api.OpenLobbies(ctx)
	if err != nil {
		return err
	}
	a.printLobbies(lobbies)
	return nil
}

func (a *App) createLobby(ctx context.Context) error {
	name, ok := a.readLine("name: ")
	if !ok {
		return nil
	}
	desc, ok := a.readLine("description: ")
	if !ok {
		return nil
	}
	maxRaw, ok := a.readLine(fmt.Sprintf("max players [%d]: ", model.DefaultLobbyMembers))
	if !ok {
		return nil
	}
	form := model.LobbyForm{Name: name, Description: desc, MaxMembers: model.DefaultLobbyMembers}
	if maxRaw != "" {
		n, err := strconv.Atoi(maxRaw)
		if err != nil {
			return fmt.Errorf("max players must be a number")
		}
		form.MaxMembers = n
	}
	if err := form.Validate(); err != nil {
		return err
	}
	created, err := a.api.CreateLobby(ctx, form)
	if err != nil {
		return err
	}
	a.printf("created %s (%s)\n", created.Name, created.ID)
	return a.enterLobby(ctx, created.ID)
}

// enterLobby runs the chat mode for one lobby. Incoming messages are
// printed as the engine delivers snapshots; typed lines are sent;
// /back leaves.
func (a *App) enterLobby(ctx context.Context, lobbyID string) error {
	eng := lobby.NewEngine(a.api, lobbyID, a.poll)
	defer eng.Close()

	now := time.Now
	// The engine delivers snapshots from its poll goroutine and from
	// this goroutine's send path, so the shown-tail counter needs its
	// own lock.
	var printedMu sync.Mutex
	var printed int
	eng.OnLobby = func(l *model.Lobby) {
		a.printf("-- %s (%d/%d) -- type /back to leave\n", l.Name, len(l.Members), l.MaxMembers)
	}
	eng.OnMessages = func(msgs []model.Message) {
		printedMu.Lock()
		defer printedMu.Unlock()
		// Snapshots are wholesale; print only the tail we have not
		// shown yet, and reprint everything if history was rewritten.
		if printed > len(msgs) {
			printed = 0
		}
		for _, m := range msgs[printed:] {
			a.printf("[%s] %s: %s\n", model.FormatAge(m.CreatedAt, now()), m.Username, m.Message)
		}
		printed = len(msgs)
	}
	eng.OnClosed = func(err error) {
		a.printf("lobby unavailable: %s\n", userMessage(err))
	}

	if err := eng.Open(ctx); err != nil {
		// OnClosed already told the user; return to the main prompt.
		return nil
	}

	for {
		line, ok := a.readLine("")
		if !ok {
			return nil
		}
		if line == "/back" {
			return nil
		}
		if line == "" {
			continue
		}
		eng.SetInput(line)
		if err := eng.SendMessage(ctx); err != nil {
			a.printf("not sent: %s (draft kept)\n", userMessage(err))
		}
	}
}

func (a *App) friends(ctx context.Context) error {
	friends, err := a.api.Friends(ctx)
	if err != nil {
		return err
	}
	if len(friends) == 0 {
		a.printf("(no friends yet)\n")
		return nil
	}
	for _, f := range friends {
		a.printf("%s  %s\n", f.ID, f.Username)
	}
	return nil
}

func (a *App) friendRequests(ctx context.Context) error {
	reqs, err := a.api.FriendRequests(ctx)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		a.printf("(no pending requests)\n")
		return nil
	}
	for _, r := range reqs {
		a.printf("%s  from %s (%s)\n", r.ID, r.From.Username, model.FormatAge(r.CreatedAt, time.Now()))
	}
	return nil
}

func (a *App) publicProfile(ctx context.Context, userID string) error {
	u, err := a.api.PublicProfile(ctx, userID)
	if err != nil {
		return err
	}
	a.printf("%s\n", u.Username)
	if u.Main != nil {
		a.printf("main: %s\n", *u.Main)
	}
	if u.Description != nil {
		a.printf("%s\n", *u.Description)
	}
	status, err := a.api.FriendStatus(ctx, userID)
	if err != nil {
		return err
	}
	switch {
	case status.IsFriend:
		a.printf("you are friends\n")
	case status.HasPendingRequest:
		a.printf("friend request pending\n")
	}
	return nil
}

// search runs the live search mode: each typed line re-queries after
// the debounce window, an empty line exits.
func (a *App) search(ctx context.Context) error {
	results := make(chan struct{}, 1)
	searcher := social.NewSearcher(a.api, a.debounce)
	defer searcher.Close()
	searcher.OnResults = func(query string, users []model.UserRef) {
		if query == "" {
			return
		}
		if len(users) == 0 {
			a.printf("no players match %q\n", query)
		}
		for _, u := range users {
			a.printf("%s  %s\n", u.ID, u.Username)
		}
		select {
		case results <- struct{}{}:
		default:
		}
	}

	a.printf("search (empty line to stop):\n")
	for {
		line, ok := a.readLine("? ")
		if !ok || line == "" {
			return nil
		}
		if len([]rune(line)) < social.MinQueryLength {
			a.printf("keep typing, %d characters minimum\n", social.MinQueryLength)
			continue
		}
		searcher.SetQuery(ctx, line)
		select {
		case <-results:
		case <-time.After(a.debounce + 5*time.Second):
			a.printf("search timed out\n")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (a *App) roster(ctx context.Context, filter string) error {
	liked := map[string]bool{}
	if a.session.Authenticated() {
		names, err := a.api.LikedCharacters(ctx)
		if err == nil {
			for _, n := range names {
				liked[n] = true
			}
		}
	}
	filter = strings.ToLower(filter)
	for _, c := range model.Roster {
		if filter != "" && !strings.Contains(strings.ToLower(c.Name), filter) {
			continue
		}
		mark := " "
		if liked[c.Name] {
			mark = "*"
		}
		a.printf("%s %-24s %-28s %s\n", mark, c.Name, c.Series, c.Difficulty)
	}
	return nil
}

func (a *App) likes(ctx context.Context) error {
	names, err := a.api.LikedCharacters(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		a.printf("(no liked characters)\n")
		return nil
	}
	sort.Strings(names)
	for _, n := range names {
		a.printf("%s\n", n)
	}
	return nil
}

func (a *App) toggleLike(ctx context.Context, name string) error {
	c := model.FindCharacter(name)
	if c == nil {
		return fmt.Errorf("no character named %q", name)
	}
	liked, err := a.api.ToggleLike(ctx, c.Name)
	if err != nil {
		return err
	}
	count, err := a.api.LikeCount(ctx, c.Name)
	if err != nil {
		return err
	}
	if liked {
		a.printf("liked %s (%d likes)\n", c.Name, count)
	} else {
		a.printf("unliked %s (%d likes)\n", c.Name, count)
	}
	return nil
}
