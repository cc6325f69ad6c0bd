// Command redditctl is a command-line client for the minireddit JSON API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// app carries global flags and IO for every subcommand.
type app struct {
	server string
	in     io.Reader
	out    io.Writer
}

func (a *app) printJSON(v any) {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (a *app) anon() *client { return newClient(a.server, "") }

func (a *app) authed() (*client, error) {
	s, err := loadSession(a.server)
	if err != nil {
		return nil, err
	}
	return newClient(a.server, s.Token), nil
}

func defaultServer() string {
	if v := os.Getenv("REDDITCTL_SERVER"); v != "" {
		return v
	}
	return "http://localhost:3000"
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "redditctl",
		Short:         "Command-line client for minireddit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.server, "server", defaultServer(), "server base URL")
	root.SetOut(a.out)

	root.AddCommand(
		versionCmd(a),
		signupCmd(a),
		loginCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		postsCmd(a),
		postCmd(a),
		submitCmd(a),
		voteCmd(a),
		commentCmd(a),
		subredditsCmd(a),
		createSubredditCmd(a),
	)
	return root
}

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "redditctl %s (%s)\n", version, buildDate)
		},
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func credentialFlags(cmd *cobra.Command, c *credentials) {
	cmd.Flags().StringVarP(&c.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&c.Password, "password", "p", "", "password (prompted when empty)")
	_ = cmd.MarkFlagRequired("username")
}

func (a *app) fillPassword(c *credentials) error {
	if c.Password != "" {
		return nil
	}
	pw, err := promptPassword(a.in, a.out)
	if err != nil {
		return err
	}
	c.Password = pw
	return nil
}

func signupCmd(a *app) *cobra.Command {
	var c credentials
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.fillPassword(&c); err != nil {
				return err
			}
			var out map[string]any
			if _, err := a.anon().do(cmd.Context(), http.MethodPost, "/auth/signup", c, &out); err != nil {
				return err
			}
			a.printJSON(out)
			return nil
		},
	}
	credentialFlags(cmd, &c)
	return cmd
}

func loginCmd(a *app) *cobra.Command {
	var c credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.fillPassword(&c); err != nil {
				return err
			}
			var out map[string]any
			resp, err := a.anon().do(cmd.Context(), http.MethodPost, "/auth/login", c, &out)
			if err != nil {
				return err
			}
			token := sessionFrom(resp)
			if token == "" {
				return fmt.Errorf("server did not set a %s cookie", sessionCookie)
			}
			if err := saveSession(sessionFile{Server: a.server, Username: c.Username, Token: token, SavedAt: nowFunc()}); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "ok")
			return nil
		},
	}
	credentialFlags(cmd, &c)
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cl, err := a.authed()
			if err != nil {
				return clearSession()
			}
			if _, err := cl.do(cmd.Context(), http.MethodPost, "/auth/logout", nil, nil); err != nil {
				return err
			}
			if err := clearSession(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "ok")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cl, err := a.authed()
			if err != nil {
				return err
			}
			var out map[string]any
			if _, err := cl.do(cmd.Context(), http.MethodGet, "/me", nil, &out); err != nil {
				return err
			}
			a.printJSON(out)
			return nil
		},
	}
}

func postsCmd(a *app) *cobra.Command {
	var sort, sub string
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List posts (at most 25)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := "/"
			switch {
			case sub != "":
				path = "/r/" + url.PathEscape(sub)
			case sort != "":
				path = "/sort/" + url.PathEscape(sort)
			}
			var out []map[string]any
			if _, err := a.anon().do(cmd.Context(), http.MethodGet, path, nil, &out); err != nil {
				return err
			}
			a.printJSON(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&sort, "sort", "s", "", "new, top or hot")
	cmd.Flags().StringVarP(&sub, "subreddit", "r", "", "only this subreddit (takes priority over --sort)")
	return cmd
}

func postCmd(a *app) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Show a post with its comments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out map[string]any
			if _, err := a.anon().do(cmd.Context(), http.MethodGet, "/post/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
				return err
			}
			a.printJSON(out)
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "post id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func submitCmd(a *app) *cobra.Command {
	var req struct {
		SubredditID int64  `json:"subredditId"`
		Title       string `json:"title"`
		URL         string `json:"url"`
	}
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a link post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cl, err := a.authed()
			if err != nil {
				return err
			}
			var out map[string]any
			if _, err := cl.do(cmd.Context(), http.MethodPost, "/createPost", req, &out); err != nil {
				return err
			}
			a.printJSON(out)
			return nil
		},
	}
	cmd.Flags().Int64Var(&req.SubredditID, "subreddit-id", 0, "subreddit id")
	cmd.Flags().StringVar(&req.Title, "title", "", "post title")
	cmd.Flags().StringVar(&req.URL, "url", "", "link URL")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func voteCmd(a *app) *cobra.Command {
	var req struct {
		PostID        int64 `json:"postId"`
		VoteDirection int   `json:"voteDirection"`
	}
	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Vote on a post (-1, 0 or 1)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cl, err := a.authed()
			if err != nil {
				return err
			}
			if _, err := cl.do(cmd.Context(), http.MethodPost, "/vote", req, nil); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "ok")
			return nil
		},
	}
	cmd.Flags().Int64Var(&req.PostID, "post", 0, "post id")
	cmd.Flags().IntVar(&req.VoteDirection, "dir", 1, "vote direction")
	_ = cmd.MarkFlagRequired("post")
	return cmd
}

func commentCmd(a *app) *cobra.Command {
	var (
		postID int64
		text   string
	)
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Comment on a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cl, err := a.authed()
			if err != nil {
				return err
			}
			var out map[string]any
			path := "/post/" + strconv.FormatInt(postID, 10) + "/comments"
			if _, err := cl.do(cmd.Context(), http.MethodPost, path, map[string]string{"text": text}, &out); err != nil {
				return err
			}
			a.printJSON(out)
			return nil
		},
	}
	cmd.Flags().Int64Var(&postID, "post", 0, "post id")
	cmd.Flags().StringVar(&text, "text", "", "comment text")
	_ = cmd.MarkFlagRequired("post")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func subredditsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "subreddits",
		Short: "List subreddits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out []map[string]any
			if _, err := a.anon().do(cmd.Context(), http.MethodGet, "/subreddits", nil, &out); err != nil {
				return err
			}
			a.printJSON(out)
			return nil
		},
	}
}

func createSubredditCmd(a *app) *cobra.Command {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	cmd := &cobra.Command{
		Use:   "create-subreddit",
		Short: "Create a subreddit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cl, err := a.authed()
			if err != nil {
				return err
			}
			var out map[string]any
			if _, err := cl.do(cmd.Context(), http.MethodPost, "/subreddits", req, &out); err != nil {
				return err
			}
			a.printJSON(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "subreddit name")
	cmd.Flags().StringVar(&req.Description, "description", "", "optional description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// main runs the selected subcommand.
func main() {
	a := &app{in: os.Stdin, out: os.Stdout}
	if err := newRootCmd(a).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
