package git

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/byterings/hubswitch/internal/platform"
)

// Scanner discovers identity profiles from the user's git config files.
// Discovery is best-effort: unreadable or malformed files are skipped and
// never surface an error.
type Scanner struct {
	home string

	// Warnf receives skipped-file notices. Nil means they are dropped.
	Warnf func(format string, args ...any)
}

// NewScanner builds a Scanner over the current user's home directory.
func NewScanner() *Scanner {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return NewScannerAt(home)
}

// NewScannerAt builds a Scanner rooted at the given home directory.
func NewScannerAt(home string) *Scanner {
	return &Scanner{home: home}
}

// Discover scans ~/.gitconfig and ~/.config/git/config plus any files they
// include, and returns the [user] sections found as profiles, deduplicated
// and sorted by display label.
//
// Includes are resolved one level deep from the two root files only;
// included files are not themselves scanned for further includes.
func (s *Scanner) Discover() []IdentityProfile {
	if s.home == "" {
		return nil
	}

	roots := []string{
		filepath.Join(s.home, ".gitconfig"),
		filepath.Join(s.home, ".config", "git", "config"),
	}

	var queue []string
	for _, root := range roots {
		content, err := os.ReadFile(root)
		if err != nil {
			if !os.IsNotExist(err) {
				s.warnf("skipping %s: %v", root, err)
			}
			continue
		}
		queue = append(queue, root)
		for _, included := range s.includePaths(string(content)) {
			if _, err := os.Stat(included); err == nil {
				queue = append(queue, included)
			}
		}
	}

	var profiles []IdentityProfile
	for _, path := range queue {
		content, err := os.ReadFile(path)
		if err != nil {
			s.warnf("skipping %s: %v", path, err)
			continue
		}
		profiles = append(profiles, userProfiles(string(content))...)
	}

	profiles = dedupeProfiles(profiles)
	SortProfiles(profiles)
	return profiles
}

// includePaths collects path values from [include] and [includeIf ...]
// sections, with a leading ~ expanded to the scanner's home directory.
func (s *Scanner) includePaths(content string) []string {
	var paths []string
	inInclude := false

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			inInclude = strings.Contains(strings.ToLower(line), "include")
			continue
		}
		if !inInclude {
			continue
		}
		if value, ok := keyValue(line, "path"); ok && value != "" {
			paths = append(paths, platform.ExpandTildeIn(value, s.home))
		}
	}
	return paths
}

// userProfiles extracts a profile from every [user] section in the file.
// Within a section the last occurrence of a key wins; a profile is emitted
// on leaving the section when either field is non-empty.
func userProfiles(content string) []IdentityProfile {
	var profiles []IdentityProfile
	var current IdentityProfile
	inUser := false

	flush := func() {
		if inUser && !current.IsEmpty() {
			profiles = append(profiles, IdentityProfile{
				Name:  strings.TrimSpace(current.Name),
				Email: strings.TrimSpace(current.Email),
			})
		}
		current = IdentityProfile{}
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			flush()
			inUser = strings.HasPrefix(strings.ToLower(line), "[user]")
			continue
		}
		if !inUser {
			continue
		}
		if value, ok := keyValue(line, "name"); ok {
			current.Name = value
		} else if value, ok := keyValue(line, "email"); ok {
			current.Email = value
		}
	}
	flush()

	return profiles
}

// keyValue recognizes a "key = value" line by a case-insensitive prefix
// match on the key followed by a '=' anywhere on the line. The value is
// everything after the first '=', trimmed.
func keyValue(line, key string) (string, bool) {
	if len(line) < len(key) || !strings.EqualFold(line[:len(key)], key) {
		return "", false
	}
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(line[idx+1:]), true
}

// dedupeProfiles drops exact (name, email) duplicates, first occurrence
// wins in file-scan order.
func dedupeProfiles(profiles []IdentityProfile) []IdentityProfile {
	seen := make(map[IdentityProfile]bool, len(profiles))
	out := profiles[:0]
	for _, p := range profiles {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func (s *Scanner) warnf(format string, args ...any) {
	if s.Warnf != nil {
		s.Warnf(format, args...)
	}
}
