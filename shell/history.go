package shell

import (
	"github.com/ruteri/healthcare-contract-client/interfaces"
	"github.com/ruteri/healthcare-contract-client/journal"
)

// PrintEvents lists contract events one per line.
func (s *Shell) PrintEvents(events []interfaces.RecordEvent) {
	if len(events) == 0 {
		s.Println("No events found.")
		return
	}
	for _, e := range events {
		s.Printf("block %d  %-24s %s  tx %s\n", e.BlockNumber, e.Name, e.Hash.Display(), e.TxHash.Hex())
	}
}

// PrintHistory lists journaled transactions, newest first.
func (s *Shell) PrintHistory(entries []journal.Entry) {
	if len(entries) == 0 {
		s.Println("No transactions recorded.")
		return
	}
	for _, e := range entries {
		s.Printf("%s  %-12s %-20s %-9s %s  tx %s", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Contract, e.Operation, e.Status, e.RecordHash, e.TxHash)
		if e.Block != 0 {
			s.Printf("  block %d", e.Block)
		}
		if e.Error != "" {
			s.Printf("  error: %s", e.Error)
		}
		s.Println()
	}
}
