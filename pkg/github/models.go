package github

import (
	"time"

	"github3/pkg/idl"
)

// Plan is the billing plan of an authenticated user.
type Plan struct {
	Name          idl.Opt[string]
	Space         idl.Opt[int64]
	Collaborators idl.Opt[int64]
	PrivateRepos  idl.Opt[int64]
}

// Fields implements idl.Model.
func (p *Plan) Fields() map[string]idl.Field {
	return map[string]idl.Field{
		"name":          &p.Name,
		"space":         &p.Space,
		"collaborators": &p.Collaborators,
		"private_repos": &p.PrivateRepos,
	}
}

// User is a public GitHub account.
type User struct {
	Login       idl.Opt[string]
	ID          idl.Opt[int64]
	AvatarURL   idl.Opt[string]
	GravatarID  idl.Opt[string]
	URL         idl.Opt[string]
	HTMLURL     idl.Opt[string]
	Type        idl.Opt[string]
	Name        idl.Opt[string]
	Company     idl.Opt[string]
	Blog        idl.Opt[string]
	Location    idl.Opt[string]
	Email       idl.Opt[string]
	Bio         idl.Opt[string]
	Hireable    idl.Opt[bool]
	SiteAdmin   idl.Opt[bool]
	PublicRepos idl.Opt[int64]
	PublicGists idl.Opt[int64]
	Followers   idl.Opt[int64]
	Following   idl.Opt[int64]
	CreatedAt   idl.Opt[time.Time]
	UpdatedAt   idl.Opt[time.Time]
}

// Fields implements idl.Model.
func (u *User) Fields() map[string]idl.Field {
	return map[string]idl.Field{
		"login":        &u.Login,
		"id":           &u.ID,
		"avatar_url":   &u.AvatarURL,
		"gravatar_id":  &u.GravatarID,
		"url":          &u.URL,
		"html_url":     &u.HTMLURL,
		"type":         &u.Type,
		"name":         &u.Name,
		"company":      &u.Company,
		"blog":         &u.Blog,
		"location":     &u.Location,
		"email":        &u.Email,
		"bio":          &u.Bio,
		"hireable":     &u.Hireable,
		"site_admin":   &u.SiteAdmin,
		"public_repos": &u.PublicRepos,
		"public_gists": &u.PublicGists,
		"followers":    &u.Followers,
		"following":    &u.Following,
		"created_at":   &u.CreatedAt,
		"updated_at":   &u.UpdatedAt,
	}
}

// AuthUser is the account behind the token, with its private counters.
type AuthUser struct {
	User
	TotalPrivateRepos idl.Opt[int64]
	OwnedPrivateRepos idl.Opt[int64]
	PrivateGists      idl.Opt[int64]
	DiskUsage         idl.Opt[int64]
	Collaborators     idl.Opt[int64]
	Plan              idl.Opt[*Plan]
}

// Fields implements idl.Model.
func (a *AuthUser) Fields() map[string]idl.Field {
	f := a.User.Fields()
	f["total_private_repos"] = &a.TotalPrivateRepos
	f["owned_private_repos"] = &a.OwnedPrivateRepos
	f["private_gists"] = &a.PrivateGists
	f["disk_usage"] = &a.DiskUsage
	f["collaborators"] = &a.Collaborators
	f["plan"] = &a.Plan
	return f
}

// Org is an organization.
type Org struct {
	Login       idl.Opt[string]
	ID          idl.Opt[int64]
	URL         idl.Opt[string]
	HTMLURL     idl.Opt[string]
	AvatarURL   idl.Opt[string]
	Description idl.Opt[string]
	Name        idl.Opt[string]
	Company     idl.Opt[string]
	Blog        idl.Opt[string]
	Location    idl.Opt[string]
	Email       idl.Opt[string]
	Type        idl.Opt[string]
	PublicRepos idl.Opt[int64]
	PublicGists idl.Opt[int64]
	Followers   idl.Opt[int64]
	Following   idl.Opt[int64]
	CreatedAt   idl.Opt[time.Time]
	UpdatedAt   idl.Opt[time.Time]
}

// Fields implements idl.Model.
func (o *Org) Fields() map[string]idl.Field {
	return map[string]idl.Field{
		"login":        &o.Login,
		"id":           &o.ID,
		"url":          &o.URL,
		"html_url":     &o.HTMLURL,
		"avatar_url":   &o.AvatarURL,
		"description":  &o.Description,
		"name":         &o.Name,
		"company":      &o.Company,
		"blog":         &o.Blog,
		"location":     &o.Location,
		"email":        &o.Email,
		"type":         &o.Type,
		"public_repos": &o.PublicRepos,
		"public_gists": &o.PublicGists,
		"followers":    &o.Followers,
		"following":    &o.Following,
		"created_at":   &o.CreatedAt,
		"updated_at":   &o.UpdatedAt,
	}
}

// Repo is a repository.
type Repo struct {
	ID              idl.Opt[int64]
	Name            idl.Opt[string]
	FullName        idl.Opt[string]
	Description     idl.Opt[string]
	Homepage        idl.Opt[string]
	Language        idl.Opt[string]
	DefaultBranch   idl.Opt[string]
	HTMLURL         idl.Opt[string]
	CloneURL        idl.Opt[string]
	SSHURL          idl.Opt[string]
	Private         idl.Opt[bool]
	Fork            idl.Opt[bool]
	Archived        idl.Opt[bool]
	HasIssues       idl.Opt[bool]
	HasWiki         idl.Opt[bool]
	HasDownloads    idl.Opt[bool]
	ForksCount      idl.Opt[int64]
	StargazersCount idl.Opt[int64]
	WatchersCount   idl.Opt[int64]
	OpenIssuesCount idl.Opt[int64]
	Size            idl.Opt[int64]
	PushedAt        idl.Opt[time.Time]
	CreatedAt       idl.Opt[time.Time]
	UpdatedAt       idl.Opt[time.Time]
	Owner           idl.Opt[*User]
}

// Fields implements idl.Model.
func (r *Repo) Fields() map[string]idl.Field {
	return map[string]idl.Field{
		"id":                &r.ID,
		"name":              &r.Name,
		"full_name":         &r.FullName,
		"description":       &r.Description,
		"homepage":          &r.Homepage,
		"language":          &r.Language,
		"default_branch":    &r.DefaultBranch,
		"html_url":          &r.HTMLURL,
		"clone_url":         &r.CloneURL,
		"ssh_url":           &r.SSHURL,
		"private":           &r.Private,
		"fork":              &r.Fork,
		"archived":          &r.Archived,
		"has_issues":        &r.HasIssues,
		"has_wiki":          &r.HasWiki,
		"has_downloads":     &r.HasDownloads,
		"forks_count":       &r.ForksCount,
		"stargazers_count":  &r.StargazersCount,
		"watchers_count":    &r.WatchersCount,
		"open_issues_count": &r.OpenIssuesCount,
		"size":              &r.Size,
		"pushed_at":         &r.PushedAt,
		"created_at":        &r.CreatedAt,
		"updated_at":        &r.UpdatedAt,
		"owner":             &r.Owner,
	}
}

// GistFile is one file of a gist, keyed by filename in Gist.Files.
type GistFile struct {
	Filename idl.Opt[string]
	Type     idl.Opt[string]
	Language idl.Opt[string]
	RawURL   idl.Opt[string]
	Content  idl.Opt[string]
	Size     idl.Opt[int64]
}

// Fields implements idl.Model.
func (g *GistFile) Fields() map[string]idl.Field {
	return map[string]idl.Field{
		"filename": &g.Filename,
		"type":     &g.Type,
		"language": &g.Language,
		"raw_url":  &g.RawURL,
		"content":  &g.Content,
		"size":     &g.Size,
	}
}

// Gist is a gist with its files.
type Gist struct {
	ID          idl.Opt[string]
	URL         idl.Opt[string]
	HTMLURL     idl.Opt[string]
	Description idl.Opt[string]
	Public      idl.Opt[bool]
	Comments    idl.Opt[int64]
	CreatedAt   idl.Opt[time.Time]
	UpdatedAt   idl.Opt[time.Time]
	Owner       idl.Opt[*User]
	Files       idl.Collection[*GistFile]
}

// Fields implements idl.Model.
func (g *Gist) Fields() map[string]idl.Field {
	return map[string]idl.Field{
		"id":          &g.ID,
		"url":         &g.URL,
		"html_url":    &g.HTMLURL,
		"description": &g.Description,
		"public":      &g.Public,
		"comments":    &g.Comments,
		"created_at":  &g.CreatedAt,
		"updated_at":  &g.UpdatedAt,
		"owner":       &g.Owner,
		"files":       &g.Files,
	}
}

// PullRef is the head or base of a pull request.
type PullRef struct {
	Label idl.Opt[string]
	Ref   idl.Opt[string]
	SHA   idl.Opt[string]
	User  idl.Opt[*User]
	Repo  idl.Opt[*Repo]
}

// Fields implements idl.Model.
func (p *PullRef) Fields() map[string]idl.Field {
	return map[string]idl.Field{
		"label": &p.Label,
		"ref":   &p.Ref,
		"sha":   &p.SHA,
		"user":  &p.User,
		"repo":  &p.Repo,
	}
}

// PullRequest is a pull request.
type PullRequest struct {
	ID             idl.Opt[int64]
	Number         idl.Opt[int64]
	State          idl.Opt[string]
	Title          idl.Opt[string]
	Body           idl.Opt[string]
	HTMLURL        idl.Opt[string]
	DiffURL        idl.Opt[string]
	PatchURL       idl.Opt[string]
	MergeCommitSHA idl.Opt[string]
	Merged         idl.Opt[bool]
	Mergeable      idl.Opt[bool]
	Comments       idl.Opt[int64]
	Commits        idl.Opt[int64]
	Additions      idl.Opt[int64]
	Deletions      idl.Opt[int64]
	ChangedFiles   idl.Opt[int64]
	CreatedAt      idl.Opt[time.Time]
	UpdatedAt      idl.Opt[time.Time]
	ClosedAt       idl.Opt[time.Time]
	MergedAt       idl.Opt[time.Time]
	User           idl.Opt[*User]
	MergedBy       idl.Opt[*User]
	Head           idl.Opt[*PullRef]
	Base           idl.Opt[*PullRef]
}

// Fields implements idl.Model.
func (p *PullRequest) Fields() map[string]idl.Field {
	return map[string]idl.Field{
		"id":               &p.ID,
		"number":           &p.Number,
		"state":            &p.State,
		"title":            &p.Title,
		"body":             &p.Body,
		"html_url":         &p.HTMLURL,
		"diff_url":         &p.DiffURL,
		"patch_url":        &p.PatchURL,
		"merge_commit_sha": &p.MergeCommitSHA,
		"merged":           &p.Merged,
		"mergeable":        &p.Mergeable,
		"comments":         &p.Comments,
		"commits":          &p.Commits,
		"additions":        &p.Additions,
		"deletions":        &p.Deletions,
		"changed_files":    &p.ChangedFiles,
		"created_at":       &p.CreatedAt,
		"updated_at":       &p.UpdatedAt,
		"closed_at":        &p.ClosedAt,
		"merged_at":        &p.MergedAt,
		"user":             &p.User,
		"merged_by":        &p.MergedBy,
		"head":             &p.Head,
		"base":             &p.Base,
	}
}

// PullFile is a file changed by a pull request.
type PullFile struct {
	SHA       idl.Opt[string]
	Filename  idl.Opt[string]
	Status    idl.Opt[string]
	BlobURL   idl.Opt[string]
	RawURL    idl.Opt[string]
	Patch     idl.Opt[string]
	Additions idl.Opt[int64]
	Deletions idl.Opt[int64]
	Changes   idl.Opt[int64]
}

// Fields implements idl.Model.
func (p *PullFile) Fields() map[string]idl.Field {
	return map[string]idl.Field{
		"sha":       &p.SHA,
		"filename":  &p.Filename,
		"status":    &p.Status,
		"blob_url":  &p.BlobURL,
		"raw_url":   &p.RawURL,
		"patch":     &p.Patch,
		"additions": &p.Additions,
		"deletions": &p.Deletions,
		"changes":   &p.Changes,
	}
}

// MergeResult is the answer to a merge request.
type MergeResult struct {
	SHA     idl.Opt[string]
	Merged  idl.Opt[bool]
	Message idl.Opt[string]
}

// Fields implements idl.Model.
func (m *MergeResult) Fields() map[string]idl.Field {
	return map[string]idl.Field{
		"sha":     &m.SHA,
		"merged":  &m.Merged,
		"message": &m.Message,
	}
}
