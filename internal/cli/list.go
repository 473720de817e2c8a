package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/bytemouse/cardify/internal/storage"
)

func docsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "list ingested documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			docs, err := storage.NewDocumentRepo(db).List(cmd.Context())
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Filename", "Title", "Author", "Published", "Pages"})
			for _, doc := range docs {
				table.Append([]string{
					doc.ID, doc.Filename, doc.Title, doc.Author,
					doc.PublicationDate, strconv.Itoa(doc.PageCount),
				})
			}
			table.Render()
			return nil
		},
	}
}

func chunksCmd() *cobra.Command {
	var docID string

	command := &cobra.Command{
		Use:     "chunks",
		Short:   "list the chunks of a document",
		Example: "cardify chunks -d <doc-id>",
		RunE: func(cmd *cobra.Command, args []string) error {
			if docID == "" {
				return fmt.Errorf("--doc-id is required")
			}

			db, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			chunks, err := storage.NewChunkRepo(db).ListByDocument(cmd.Context(), docID)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Index", "Kind", "Pages", "Headers", "Content"})
			for _, chunk := range chunks {
				table.Append([]string{
					chunk.ID,
					strconv.Itoa(chunk.ChunkIndex),
					chunk.Kind,
					pageRange(chunk.StartPage, chunk.EndPage),
					headerPath(chunk),
					preview(chunk.Content, 60),
				})
			}
			table.Render()
			return nil
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")
	command.Flags().SortFlags = false

	return command
}

func cardsCmd() *cobra.Command {
	var chunkID string

	command := &cobra.Command{
		Use:     "cards",
		Short:   "list the flashcards of a chunk",
		Example: "cardify cards -c <chunk-id>",
		RunE: func(cmd *cobra.Command, args []string) error {
			if chunkID == "" {
				return fmt.Errorf("--chunk-id is required")
			}

			db, err := openStore()
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			cards, err := storage.NewCardRepo(db).ListByChunk(cmd.Context(), chunkID)
			if err != nil {
				return err
			}

			for _, card := range cards {
				printField("Card", card.ID)
				printField("Deck", card.DeckName)
				printField("Front", card.Front)
				printField("Back", card.Back)
				fmt.Println()
			}
			if len(cards) == 0 {
				fmt.Println("no cards for chunk", chunkID)
			}
			return nil
		},
	}

	command.Flags().StringVarP(&chunkID, "chunk-id", "c", "", "chunk id (required)")
	command.Flags().SortFlags = false

	return command
}

func pageRange(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}

// headerPath renders the set header levels as "A > B > C".
func headerPath(chunk *storage.ChunkRecord) string {
	var parts []string
	for _, h := range []*string{chunk.Header1, chunk.Header2, chunk.Header3, chunk.Header4} {
		if h != nil {
			parts = append(parts, *h)
		}
	}
	return strings.Join(parts, " > ")
}

func preview(s string, n int) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func printField(label, value string) {
	color.Set(color.FgCyan)
	fmt.Print(label)
	color.Unset()
	fmt.Printf(": %s\n", value)
}
