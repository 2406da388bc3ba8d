package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	resume(ctx context.Context)
	handleError(ctx context.Context, err error)

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Overview(ctx context.Context) error
	Go(ctx context.Context, args []string) error

	Users(ctx context.Context, args []string) error
	User(ctx context.Context, args []string) error
	Ban(ctx context.Context, args []string) error
	Activate(ctx context.Context, args []string) error
	RemoveUser(ctx context.Context, args []string) error

	Posts(ctx context.Context, args []string) error
	Post(ctx context.Context, args []string) error
	HidePost(ctx context.Context, args []string) error
	PublishPost(ctx context.Context, args []string) error
	RemovePost(ctx context.Context, args []string) error

	AuditLogs(ctx context.Context, args []string) error
	AuditLog(ctx context.Context, args []string) error
	Export(ctx context.Context) error

	Emails(ctx context.Context, args []string) error
	Email(ctx context.Context, args []string) error
	Star(ctx context.Context, args []string) error
	Unstar(ctx context.Context, args []string) error
	RemoveEmail(ctx context.Context, args []string) error
	Compose(ctx context.Context) error

	Chats(ctx context.Context, args []string) error
	Chat(ctx context.Context, args []string) error
	Takeover(ctx context.Context, args []string) error
	Reply(ctx context.Context, args []string) error
	Analyze(ctx context.Context, args []string) error
	CloseChat(ctx context.Context, args []string) error

	Payments(ctx context.Context, args []string) error
	Usage(ctx context.Context, args []string) error

	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Page(ctx context.Context, args []string) error
	Size(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Retry(ctx context.Context) error
}

const helpLoggedOut = `Available commands: login, go <path>, help, exit`

const helpLoggedIn = `Available commands:
  overview | whoami | go <path> | logout | exit
  users [search= role= status=]          user <id>, ban <id>, activate <id>, rmuser <id>
  posts [search= status= authorId=]      post <id>, hide <id>, publish <id>, rmpost <id>
  audit [action= actor= resourceType= from= to=]   log <id>, export
  emails [folder= unread starred search=]           email <id>, star <id>, unstar <id>, rmemail <id>, compose
  chats [status= search=]                chat <id>, takeover <id>, reply <id> [text], analyze <id>, close <id>
  payments [status= plan= from= to=]     usage [granularity= from= to=]
  (n)ext, (p)rev, page <n>, size <n>, sort <field> [asc|desc], retry`

// readLine reads one line from r. The second result is false once the
// input is exhausted.
func readLine(r *bufio.Reader) (string, bool) {
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// runREPL starts a simple read-eval-print loop for the admin console.
//
// Before each prompt the current route is resumed (a pending sign-in or
// session bootstrap runs here). A line is read from reader, the first token
// is the command and the rest are its arguments. The loop exits on EOF,
// on "exit"/"quit" or when ctx is cancelled.
//
// Commands other than help, login, go and exit require a signed-in
// session. Errors returned by command handlers go to handleError, which
// prints them and moves to the matching error page.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		a.resume(ctx)

		printlnFn(fmt.Sprintf("admin %s> ", statusFn()))
		line, ok := readLine(reader)
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "login":
			a.handleError(ctx, a.Login(ctx))
			continue
		case "go":
			a.handleError(ctx, a.Go(ctx, args))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			printlnFn("Please log in first (type 'login').")
			continue
		}

		var err error
		switch cmd {
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.Whoami(ctx)
		case "overview":
			err = a.Overview(ctx)

		case "users":
			err = a.Users(ctx, args)
		case "user":
			err = a.User(ctx, args)
		case "ban":
			err = a.Ban(ctx, args)
		case "activate":
			err = a.Activate(ctx, args)
		case "rmuser":
			err = a.RemoveUser(ctx, args)

		case "posts":
			err = a.Posts(ctx, args)
		case "post":
			err = a.Post(ctx, args)
		case "hide":
			err = a.HidePost(ctx, args)
		case "publish":
			err = a.PublishPost(ctx, args)
		case "rmpost":
			err = a.RemovePost(ctx, args)

		case "audit":
			err = a.AuditLogs(ctx, args)
		case "log":
			err = a.AuditLog(ctx, args)
		case "export":
			err = a.Export(ctx)

		case "emails":
			err = a.Emails(ctx, args)
		case "email":
			err = a.Email(ctx, args)
		case "star":
			err = a.Star(ctx, args)
		case "unstar":
			err = a.Unstar(ctx, args)
		case "rmemail":
			err = a.RemoveEmail(ctx, args)
		case "compose":
			err = a.Compose(ctx)

		case "chats":
			err = a.Chats(ctx, args)
		case "chat":
			err = a.Chat(ctx, args)
		case "takeover":
			err = a.Takeover(ctx, args)
		case "reply":
			err = a.Reply(ctx, args)
		case "analyze":
			err = a.Analyze(ctx, args)
		case "close":
			err = a.CloseChat(ctx, args)

		case "payments":
			err = a.Payments(ctx, args)
		case "usage":
			err = a.Usage(ctx, args)

		case "n", "next":
			err = a.Next(ctx)
		case "p", "prev":
			err = a.Prev(ctx)
		case "page":
			err = a.Page(ctx, args)
		case "size":
			err = a.Size(ctx, args)
		case "sort":
			err = a.Sort(ctx, args)
		case "retry":
			err = a.Retry(ctx)

		default:
			printlnFn("Unknown command:", cmd)
		}
		a.handleError(ctx, err)
	}
}
