package subject

import (
	"bufio"
	"io"
	"io/fs"
	"strings"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/ratiba/core"
)

var ErrNotFound = errors.New("subject list not found")

// minSuggestRatio is the similarity a catalog entry needs to be suggested for an unknown subject.
const minSuggestRatio = .6

// Catalog is the list of selectable subjects, one per line of a text file.
type Catalog struct {
	fsys     fs.FS
	name     string
	subjects []string
}

func NewCatalog(fsys fs.FS, name string) *Catalog {
	vala.BeginValidation().Validate(
		vala.IsNotNil(fsys, "fsys"),
		vala.StringNotEmpty(name, "name"),
	).CheckAndPanic()

	return &Catalog{fsys: fsys, name: name}
}

// Load (re)reads the subject list. Every non-empty line is a subject, in file order.
// A missing list empties the Catalog and returns ErrNotFound.
func (c *Catalog) Load() ([]string, error) {
	f, err := c.fsys.Open(c.name)
	if err != nil {
		c.subjects = nil
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "opening %s", c.name)
	}
	defer func() { _ = f.Close() }()

	subjects := make([]string, 0)
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			c.subjects = nil
			return nil, errors.Wrapf(err, "reading %s", c.name)
		}
		if line = strings.TrimRight(line, "\r\n"); line != "" {
			subjects = append(subjects, line)
		}
		if err == io.EOF {
			break
		}
	}

	c.subjects = subjects
	return c.Subjects(), nil
}

// Subjects returns the subjects of the last Load.
func (c *Catalog) Subjects() []string {
	subjects := make([]string, len(c.subjects))
	copy(subjects, c.subjects)
	return subjects
}

func (c *Catalog) Contains(name string) bool {
	for _, s := range c.subjects {
		if s == name {
			return true
		}
	}
	return false
}

// Suggest returns the catalog entry closest to `name`, if any is close enough.
func (c *Catalog) Suggest(name string) (string, bool) {
	lname := core.CleanString(name, true /* lower */)
	if lname == "" {
		return "", false
	}

	var best string
	var bestRatio float64
	for _, s := range c.subjects {
		ratio := difflib.NewMatcher(strings.Split(lname, ""), strings.Split(strings.ToLower(s), "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = s, ratio
		}
	}
	if bestRatio < minSuggestRatio {
		return "", false
	}
	return best, true
}
