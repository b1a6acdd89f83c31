package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/devkit-cli/devkit/internal/apitest"
	"github.com/devkit-cli/devkit/internal/prompt"
	"github.com/devkit-cli/devkit/internal/token"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	apiHeaders      []string
	apiBody         string
	apiTimeout      int
	apiAuth         string
	apiWithAuth     bool
	apiShowHeaders  bool
	apiNoHistory    bool
	apiHistoryLimit int
	apiHistoryClear bool
)

var apiCmd = &cobra.Command{
	Use:     "api",
	Short:   "Send test HTTP requests",
	GroupID: "network",
}

var apiRequestCmd = &cobra.Command{
	Use:   "request [METHOD URL]",
	Short: "Send one HTTP request and print the response",
	Long: `Sends a single HTTP request and prints the response body.

Without arguments the method, URL, headers, and body are prompted for.
Examples:
  devkit api request GET https://api.example.com/users
  devkit api request POST https://api.example.com/users --body '{"name":"jo"}'
  devkit api request GET https://api.example.com/private --with-auth`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runAPIRequest,
}

var apiHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent requests",
	Args:  cobra.NoArgs,
	RunE:  runAPIHistory,
}

func init() {
	apiRequestCmd.Flags().StringArrayVarP(&apiHeaders, "header", "H", nil, "Request header ('Name: value', repeatable)")
	apiRequestCmd.Flags().StringVar(&apiBody, "body", "", "Request body (JSON; '-' reads stdin)")
	apiRequestCmd.Flags().IntVar(&apiTimeout, "timeout", 30, "Request timeout in seconds")
	apiRequestCmd.Flags().StringVar(&apiAuth, "auth", "", "Bearer token for the Authorization header")
	apiRequestCmd.Flags().BoolVar(&apiWithAuth, "with-auth", false, "Resolve a bearer token from .env, the environment, or a prompt")
	apiRequestCmd.Flags().BoolVarP(&apiShowHeaders, "include", "i", false, "Print response headers")
	apiRequestCmd.Flags().BoolVar(&apiNoHistory, "no-history", false, "Do not record this request")

	apiHistoryCmd.Flags().IntVarP(&apiHistoryLimit, "limit", "n", 20, "Number of entries to show")
	apiHistoryCmd.Flags().BoolVar(&apiHistoryClear, "clear", false, "Delete the history log")

	apiCmd.AddCommand(apiRequestCmd, apiHistoryCmd)
	rootCmd.AddCommand(apiCmd)
}

func runAPIRequest(cmd *cobra.Command, args []string) error {
	req := apitest.Request{Headers: make(map[string]string)}

	switch len(args) {
	case 2:
		req.Method, req.URL = args[0], args[1]
	case 1:
		return fmt.Errorf("pass both METHOD and URL, or neither for interactive mode")
	default:
		if err := promptRequest(&req); err != nil {
			return err
		}
	}

	for _, raw := range apiHeaders {
		name, value, err := apitest.ParseHeader(raw)
		if err != nil {
			return err
		}
		req.Headers[name] = value
	}

	if apiBody != "" {
		body := apiBody
		if body == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read body from stdin: %w", err)
			}
			body = string(data)
		}
		if err := apitest.ValidateJSONBody(body); err != nil {
			return err
		}
		req.Body = body
	}

	if apiAuth != "" || apiWithAuth {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		result, err := token.Resolve(apiAuth, cwd, "")
		if err != nil {
			return err
		}
		log.Debug("resolved auth token", "source", result.Source)
		req.Headers["Authorization"] = "Bearer " + result.Token
	}

	client := apitest.NewClient(time.Duration(apiTimeout) * time.Second)
	resp, err := client.Do(&req)
	if err != nil {
		return err
	}

	printStatus(resp)
	if apiShowHeaders {
		for _, line := range apitest.HeaderLines(resp.Headers) {
			fmt.Fprintln(os.Stderr, "  "+line)
		}
		fmt.Fprintln(os.Stderr)
	}
	if resp.Body != "" {
		fmt.Println(apitest.PrettyJSON(resp.Body))
	}

	if !apiNoHistory {
		// History is best-effort: a failed write never fails the request
		if herr := apitest.AppendHistory(apitest.HistoryPath(), apitest.Record(&req, resp)); herr != nil {
			log.Debug("could not record history", "err", herr)
		}
	}
	return nil
}

func promptRequest(req *apitest.Request) error {
	method, err := prompt.Select("Method", apitest.Methods)
	if err != nil {
		return err
	}
	req.Method = method

	if req.URL, err = prompt.ReadRequired("URL"); err != nil {
		return err
	}

	for {
		header, err := prompt.ReadLine("Header (blank to finish)")
		if err != nil {
			return err
		}
		if header == "" {
			break
		}
		name, value, err := apitest.ParseHeader(header)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %v\n", err)
			continue
		}
		req.Headers[name] = value
	}

	if req.Method != "GET" && req.Method != "DELETE" && prompt.Confirm("Add a JSON body?") {
		body, err := prompt.ReadEditor("Body")
		if err != nil {
			return err
		}
		if err := apitest.ValidateJSONBody(body); err != nil {
			return err
		}
		req.Body = body
	}
	return nil
}

func printStatus(resp *apitest.Response) {
	statusColor := color.New(color.FgGreen)
	switch {
	case resp.StatusCode >= 400:
		statusColor = color.New(color.FgRed)
	case resp.StatusCode >= 300:
		statusColor = color.New(color.FgYellow)
	}
	fmt.Fprintf(os.Stderr, "%s  (%s)\n\n", statusColor.Sprint(resp.Status), resp.Duration.Round(time.Millisecond))
}

func runAPIHistory(cmd *cobra.Command, args []string) error {
	path := apitest.HistoryPath()

	if apiHistoryClear {
		if err := apitest.ClearHistory(path); err != nil {
			return err
		}
		color.Green("✓ History cleared")
		return nil
	}

	entries, err := apitest.LoadHistory(path)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No requests recorded yet.")
		return nil
	}

	if apiHistoryLimit > 0 && len(entries) > apiHistoryLimit {
		entries = entries[len(entries)-apiHistoryLimit:]
	}

	for _, e := range entries {
		ts := e.Time
		if parsed, perr := time.Parse(time.RFC3339, e.Time); perr == nil {
			ts = parsed.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%s  %-6s %-3d %6dms  %s\n", ts, strings.ToUpper(e.Method), e.StatusCode, e.DurationMS, e.URL)
	}
	return nil
}
