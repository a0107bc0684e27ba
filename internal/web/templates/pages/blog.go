package pages

import (
	"github.com/a-h/templ"

	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/web/templates/layout"
)

// BlogIndexData lists every post
type BlogIndexData struct {
	layout.PageData
	Posts []model.Post
}

// BlogIndex renders the list of posts
func BlogIndex(data BlogIndexData) templ.Component {
	header := func(h *htmlWriter) {
		h.raw("<h1>Posts</h1>\n")
		if data.LoggedIn() {
			h.raw("<a class=\"action\" href=\"/create\">New</a>\n")
		}
	}

	return page(data.PageData, "Posts", header, func(h *htmlWriter) {
		if len(data.Posts) == 0 {
			h.raw("<p class=\"empty\">No posts yet.</p>\n")
			return
		}
		for _, p := range data.Posts {
			h.raw(`<article class="post" id="post-`)
			h.int(int64(p.ID))
			h.raw("\">\n  <header>\n    <div>\n      <h1>")
			h.text(p.Title)
			h.raw("</h1>\n      <div class=\"about\">by ")
			h.text(p.AuthorUsername)
			h.raw(" on ")
			h.text(date(p.Created))
			h.raw("</div>\n    </div>\n")
			if owns(data.User, p.AuthorID) {
				h.raw(`    <a class="action" href="/`)
				h.int(int64(p.ID))
				h.raw("/update\">Edit</a>\n")
			}
			h.raw("  </header>\n  <p class=\"body\">")
			h.text(p.Body)
			h.raw("</p>\n</article>\n<hr>\n")
		}
	})
}

// PostFormData backs both the create and update forms. Post is nil when
// creating.
type PostFormData struct {
	layout.PageData
	Post  *model.Post
	Title string
	Body  string
}

// PostForm renders the create or edit form for a post
func PostForm(data PostFormData) templ.Component {
	title, action := "New Post", "/create"
	if data.Post != nil {
		title = `Edit "` + data.Post.Title + `"`
		action = postPath(data.Post.ID, "update")
	}

	return page(data.PageData, title, nil, func(h *htmlWriter) {
		h.raw(`<form method="post" action="`)
		h.text(action)
		h.raw(`">
  <label for="title">Title</label>
  <input name="title" id="title" value="`)
		h.text(data.Title)
		h.raw(`" required>
  <label for="body">Body</label>
  <textarea name="body" id="body">`)
		h.text(data.Body)
		h.raw(`</textarea>
  <input type="submit" value="Save">
</form>
`)
		if data.Post != nil {
			h.raw("<hr>\n<form class=\"delete\" method=\"post\" action=\"")
			h.text(postPath(data.Post.ID, "delete"))
			h.raw(`">
  <input class="danger" type="submit" value="Delete" onclick="return confirm('Are you sure?');">
</form>
`)
		}
	})
}

func postPath(id model.PostID, action string) string {
	return "/" + itoa(int64(id)) + "/" + action
}
