package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/dmorenov/ragchat/internal/core/domain"
)

var (
	promptColor    = color.New(color.FgCyan, color.Bold)
	userColor      = color.New(color.FgGreen)
	assistantColor = color.New(color.FgWhite)
	evidenceColor  = color.New(color.FgHiBlack)
	errorColor     = color.New(color.FgRed)
	noticeColor    = color.New(color.FgYellow)
)

func (r *REPL) printModeNotice() {
	if r.mode() == domain.Unavailable {
		fmt.Fprintln(r.out, noticeColor.Sprint("backend unreachable: running on synthetic demo data"))
	}
}

func (r *REPL) printPrompt() {
	name := r.selectedName
	if name == "" {
		name = "no document"
	}
	fmt.Fprint(r.out, promptColor.Sprintf("[%s]> ", name))
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.out, `commands:
  docs              list documents
  use <id|number>   select the document to query
  upload <path>     upload a file (`+"txt, pdf, docx, odt"+`)
  delete <id>       delete a document
  ask <question>    ask about the selected document
  history           show the conversation log
  mode              show backend availability
  quit              leave
`)
}

func (r *REPL) printThinking() {
	fmt.Fprintln(r.out, evidenceColor.Sprint("thinking..."))
}

func (r *REPL) printError(msg string) {
	fmt.Fprintln(r.out, errorColor.Sprint("error: "+msg))
}

func (r *REPL) printDocuments(docs []domain.Document, selectedID string) {
	if len(docs) == 0 {
		fmt.Fprintln(r.out, "no documents uploaded yet")
		return
	}
	for i, doc := range docs {
		marker := " "
		if doc.ID == selectedID {
			marker = "*"
		}
		fmt.Fprintf(r.out, "%s %2d. %-30s %8d bytes  %3d chunks  (%s)\n",
			marker, i+1, doc.Filename, doc.Size, doc.ChunkCount, doc.ID)
	}
}

func (r *REPL) printUploaded(doc *domain.Document) {
	fmt.Fprintf(r.out, "uploaded %s (%s)\n", doc.Filename, doc.ID)
	if doc.ChunkCount == 0 {
		fmt.Fprintln(r.out, noticeColor.Sprint("note: document was not indexed (demo mode)"))
	}
}

func (r *REPL) printTurn(turn domain.ChatTurn) {
	switch turn.Role {
	case domain.RoleUser:
		fmt.Fprintln(r.out, userColor.Sprint("you: ")+turn.Text)
	default:
		fmt.Fprintln(r.out, assistantColor.Sprint("assistant: ")+turn.Text)
		for _, ev := range turn.Evidence {
			fmt.Fprintln(r.out, evidenceColor.Sprintf("  [%.2f] %s", ev.Similarity, ev.Content))
		}
	}
}
