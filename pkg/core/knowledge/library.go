// Package knowledge holds the advisor's reference library: tax circulars,
// regulator notifications, and locally curated articles. Lookup is keyword
// scoring over extracted text; there is no vector store.
package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// SourceType is the format an article was loaded from.
type SourceType string

const (
	SourceHTML     SourceType = "HTML"
	SourceMarkdown SourceType = "MARKDOWN"
)

// Article is one reference document.
type Article struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Source   string     `json:"source"` // file path it was loaded from
	Type     SourceType `json:"type"`
	Content  string     `json:"content"`
	LoadedAt time.Time  `json:"loaded_at"`
}

// Library is an in-memory article collection, safe for concurrent lookup.
type Library struct {
	mu       sync.RWMutex
	articles []Article
}

func NewLibrary() *Library {
	return &Library{}
}

// LoadDirectory ingests every .html and .md file under dir. Returns the
// number of articles loaded; unreadable files are an error rather than a
// silent skip.
func (l *Library) LoadDirectory(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("cannot read knowledge directory %s: %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		var article Article
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".html", ".htm":
			article, err = loadHTML(path)
		case ".md", ".markdown":
			article, err = loadMarkdown(path)
		default:
			continue
		}
		if err != nil {
			return loaded, err
		}
		l.Add(article)
		loaded++
	}
	return loaded, nil
}

func (l *Library) Add(article Article) {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.LoadedAt.IsZero() {
		article.LoadedAt = time.Now()
	}
	l.mu.Lock()
	l.articles = append(l.articles, article)
	l.mu.Unlock()
}

func (l *Library) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.articles)
}

// Search ranks articles by keyword hits: term frequency in the content plus
// a title bonus per matching term. Zero-score articles are not returned.
func (l *Library) Search(query string, limit int) []Article {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 || limit <= 0 {
		return nil
	}

	type scored struct {
		article Article
		score   int
	}

	l.mu.RLock()
	ranked := make([]scored, 0, len(l.articles))
	for _, a := range l.articles {
		content := strings.ToLower(a.Content)
		title := strings.ToLower(a.Title)
		score := 0
		for _, term := range terms {
			score += strings.Count(content, term)
			if strings.Contains(title, term) {
				score += 5
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{article: a, score: score})
		}
	}
	l.mu.RUnlock()

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	results := make([]Article, len(ranked))
	for i, s := range ranked {
		results[i] = s.article
	}
	return results
}

func loadHTML(path string) (Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return Article{}, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return Article{}, fmt.Errorf("cannot parse %s: %w", path, err)
	}

	// Scripts and styles contribute no text worth indexing.
	doc.Find("script, style").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		title = filepath.Base(path)
	}

	var parts []string
	doc.Find("h1, h2, h3, p, li, td").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return Article{
		Title:   title,
		Source:  path,
		Type:    SourceHTML,
		Content: strings.Join(parts, "\n"),
	}, nil
}

func loadMarkdown(path string) (Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Article{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	content := string(data)

	title := filepath.Base(path)
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			break
		}
	}

	return Article{
		Title:   title,
		Source:  path,
		Type:    SourceMarkdown,
		Content: content,
	}, nil
}
