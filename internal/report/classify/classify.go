package classify

import (
	"slices"
	"strings"

	"github.com/vietddude/backupreport/internal/core/domain"
)

// Classifier splits records into the regular and cloud-identity sections.
type Classifier struct {
	methods  []string
	keywords []string
}

// New creates a Classifier. A record is special when its method is one of
// methods and its job name contains any of keywords (case-sensitive).
func New(methods, keywords []string) *Classifier {
	return &Classifier{methods: methods, keywords: keywords}
}

// Partition returns the section a record belongs to.
func (c *Classifier) Partition(r domain.BackupRecord) domain.Partition {
	if !slices.Contains(c.methods, r.MethodName) {
		return domain.PartitionRegular
	}
	for _, kw := range c.keywords {
		if strings.Contains(r.JobName, kw) {
			return domain.PartitionSpecial
		}
	}
	return domain.PartitionRegular
}

// Split partitions records, keeping input order within each result.
func (c *Classifier) Split(records []domain.BackupRecord) (regular, special []domain.BackupRecord) {
	for _, r := range records {
		if c.Partition(r) == domain.PartitionSpecial {
			special = append(special, r)
		} else {
			regular = append(regular, r)
		}
	}
	return regular, special
}
