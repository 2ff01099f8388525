package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/api/iterator"

	"github.com/generative-ai-on-aws/summarize-me/internal/output"
)

func NewSearchCmd(s *session) *cobra.Command {
	var limit int
	var collection string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find indexed meeting videos related to a text query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.application(cmd.Context())
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = a.Config.Index.Limit
			}

			query := strings.Join(args, " ")
			it, err := a.Index.Open(collection).Search(cmd.Context(), query, limit)
			if err != nil {
				return err
			}

			f := output.NewFormatter(cmd.OutOrStdout())
			f.SearchHeader(query)
			rank := 0
			for {
				r, err := it.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					return err
				}
				rank++
				f.SearchResult(rank, r.Path, r.Distance, r.Similarity())
			}
			if rank == 0 {
				f.Info("No matching videos")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (default from config)")
	cmd.Flags().StringVar(&collection, "collection", "", "collection to search (default from config)")
	return cmd
}
