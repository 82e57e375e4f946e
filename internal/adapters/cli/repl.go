// Package cli is the terminal presentation adapter: it turns user intents
// (selected document, question text, file path) into core calls and
// renders document lists, turns and loading state.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmorenov/ragchat/internal/core/domain"
	"github.com/dmorenov/ragchat/internal/core/ports"
)

type REPL struct {
	docs       ports.DocumentCatalog
	chat       ports.ChatService
	mode       func() domain.Availability
	extensions []string

	in  io.Reader
	out io.Writer

	selectedID   string
	selectedName string
}

func NewREPL(docs ports.DocumentCatalog, chat ports.ChatService, mode func() domain.Availability, extensions []string, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		docs:       docs,
		chat:       chat,
		mode:       mode,
		extensions: extensions,
		in:         in,
		out:        out,
	}
}

func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "ragchat — ask questions about your documents")
	// Listing on startup both populates the catalog and resolves the
	// availability verdict, exactly like the original page load.
	r.listDocuments(ctx)
	r.printModeNotice()
	fmt.Fprintln(r.out, "type 'help' for commands")

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		r.printPrompt()
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		command, rest := splitCommand(line)
		switch command {
		case "quit", "exit":
			return nil
		case "help":
			r.printHelp()
		case "docs", "list":
			r.listDocuments(ctx)
		case "use", "select":
			r.selectDocument(ctx, rest)
		case "upload":
			r.uploadDocument(ctx, rest)
		case "delete", "rm":
			r.deleteDocument(ctx, rest)
		case "ask":
			r.ask(ctx, rest)
		case "history":
			r.printHistory()
		case "mode":
			fmt.Fprintf(r.out, "backend: %s\n", r.mode().String())
		default:
			// Bare text is treated as a question for the selected document.
			r.ask(ctx, line)
		}
	}
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	command := strings.ToLower(parts[0])
	rest := ""
	if len(parts) == 2 {
		rest = strings.TrimSpace(parts[1])
	}
	return command, rest
}

func (r *REPL) listDocuments(ctx context.Context) {
	docs, err := r.docs.List(ctx)
	if err != nil {
		r.printError(fmt.Sprintf("could not list documents: %v", err))
		return
	}
	r.printDocuments(docs, r.selectedID)
}

func (r *REPL) selectDocument(ctx context.Context, arg string) {
	if arg == "" {
		r.printError("usage: use <id|number>")
		return
	}
	docs, err := r.docs.List(ctx)
	if err != nil {
		r.printError(fmt.Sprintf("could not list documents: %v", err))
		return
	}

	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(docs) {
		r.setSelected(docs[n-1])
		return
	}
	for _, doc := range docs {
		if doc.ID == arg {
			r.setSelected(doc)
			return
		}
	}
	r.printError("no such document: " + arg)
}

func (r *REPL) setSelected(doc domain.Document) {
	r.selectedID = doc.ID
	r.selectedName = doc.Filename
	fmt.Fprintf(r.out, "selected %s (%s)\n", doc.Filename, doc.ID)
}

func (r *REPL) uploadDocument(ctx context.Context, path string) {
	if path == "" {
		r.printError("usage: upload <path>")
		return
	}
	if err := r.validateExtension(path); err != nil {
		r.printError(err.Error())
		return
	}

	f, err := os.Open(path)
	if err != nil {
		r.printError(fmt.Sprintf("could not open file: %v", err))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		r.printError(fmt.Sprintf("could not stat file: %v", err))
		return
	}

	doc, err := r.docs.Upload(ctx, domain.FileUpload{
		Name: filepath.Base(path),
		Size: info.Size(),
		Data: f,
	})
	if err != nil {
		r.printError(fmt.Sprintf("upload failed: %v", err))
		return
	}
	r.printUploaded(doc)
}

func (r *REPL) deleteDocument(ctx context.Context, id string) {
	if id == "" {
		r.printError("usage: delete <id>")
		return
	}
	if err := r.docs.Delete(ctx, id); err != nil {
		r.printError(fmt.Sprintf("delete failed: %v", err))
		return
	}
	if id == r.selectedID {
		r.selectedID = ""
		r.selectedName = ""
	}
	fmt.Fprintf(r.out, "deleted %s\n", id)
}

func (r *REPL) ask(ctx context.Context, question string) {
	r.printThinking()
	turn, err := r.chat.Submit(ctx, r.selectedID, question)
	switch {
	case errors.Is(err, domain.ErrNoDocumentSelected):
		r.printError("select a document first (docs, then use <id|number>)")
		return
	case errors.Is(err, domain.ErrBlankQuestion):
		r.printError("type a question")
		return
	case err != nil:
		r.printError(err.Error())
		return
	}
	r.printTurn(turn)
}

func (r *REPL) printHistory() {
	turns := r.chat.Turns()
	if len(turns) == 0 {
		fmt.Fprintln(r.out, "no conversation yet")
		return
	}
	for _, turn := range turns {
		r.printTurn(turn)
	}
}

// validateExtension enforces the upload allow-list. This guard lives in
// the presentation layer; the core accepts any validated file handle.
func (r *REPL) validateExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range r.extensions {
		if ext == allowed {
			return nil
		}
	}
	return domain.WrapError(domain.ErrInvalidFile, "upload",
		fmt.Errorf("%s is not one of %s", ext, strings.Join(r.extensions, " ")))
}
