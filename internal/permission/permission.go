// Package permission decides which actions a viewer may perform on a given
// piece of content. Every check is a pure function of the identity and the
// content's ownership metadata; nothing here touches the network.
package permission

import (
	"github.com/DJRivera25/blogctl/internal/api"
	"github.com/DJRivera25/blogctl/internal/session"
)

// sameAuthor reports whether the identity owns the content. An anonymous
// viewer never matches a record whose author metadata is missing: absent
// values on both sides compare false, never equal.
func sameAuthor(identity session.Identity, author *api.Author) bool {
	if !identity.Authenticated() || author == nil || author.ID == "" {
		return false
	}
	return identity.ID == author.ID
}

// CanCreateBlog reports whether the viewer may create a blog post. Any
// authenticated user may.
func CanCreateBlog(identity session.Identity) bool {
	return identity.Authenticated()
}

// CanEditBlog reports whether the viewer may edit the blog. Only the author
// may; admins do not get edit rights over others' posts.
func CanEditBlog(identity session.Identity, blog *api.Blog) bool {
	if blog == nil {
		return false
	}
	return sameAuthor(identity, blog.Author)
}

// CanDeleteBlog reports whether the viewer may delete the blog: the author,
// or any admin.
func CanDeleteBlog(identity session.Identity, blog *api.Blog) bool {
	if blog == nil {
		return false
	}
	if identity.Authenticated() && identity.IsAdmin {
		return true
	}
	return sameAuthor(identity, blog.Author)
}

// CanEditComment reports whether the viewer may edit the comment. Only its
// own author may.
func CanEditComment(identity session.Identity, comment *api.Comment) bool {
	if comment == nil {
		return false
	}
	return sameAuthor(identity, comment.Author)
}

// CanDeleteComment reports whether the viewer may delete the comment: an
// admin, the enclosing blog's author, or the comment's author.
func CanDeleteComment(identity session.Identity, blog *api.Blog, comment *api.Comment) bool {
	if comment == nil {
		return false
	}
	if identity.Authenticated() && identity.IsAdmin {
		return true
	}
	if blog != nil && sameAuthor(identity, blog.Author) {
		return true
	}
	return sameAuthor(identity, comment.Author)
}
