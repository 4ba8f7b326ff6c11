package github

import "github3/pkg/idl"

// Schemas of the resources served by the catalog.
var (
	PlanSchema = idl.MustDefine("plan", func() idl.Model { return &Plan{} }, idl.Groups{
		Strings:  []string{"name"},
		Integers: []string{"space", "collaborators", "private_repos"},
	})

	UserSchema = idl.MustDefine("user", func() idl.Model { return &User{} }, idl.Groups{
		Strings: []string{
			"login", "avatar_url", "gravatar_id", "url", "html_url", "type",
			"name", "company", "blog", "location", "email", "bio",
		},
		Integers: []string{"id", "public_repos", "public_gists", "followers", "following"},
		Booleans: []string{"hireable", "site_admin"},
		Dates:    []string{"created_at", "updated_at"},
	})

	AuthUserSchema = idl.MustExtend(UserSchema, "auth_user", func() idl.Model { return &AuthUser{} }, idl.Groups{
		Integers: []string{
			"total_private_repos", "owned_private_repos", "private_gists",
			"disk_usage", "collaborators",
		},
		Objects:   map[string]*idl.Schema{"plan": PlanSchema},
		Writeable: []string{"name", "email", "blog", "company", "location", "hireable", "bio"},
	})

	OrgSchema = idl.MustDefine("org", func() idl.Model { return &Org{} }, idl.Groups{
		Strings: []string{
			"login", "url", "html_url", "avatar_url", "description", "name",
			"company", "blog", "location", "email", "type",
		},
		Integers: []string{"id", "public_repos", "public_gists", "followers", "following"},
		Dates:    []string{"created_at", "updated_at"},
	})

	RepoSchema = idl.MustDefine("repo", func() idl.Model { return &Repo{} }, idl.Groups{
		Strings: []string{
			"name", "full_name", "description", "homepage", "language",
			"default_branch", "html_url", "clone_url", "ssh_url",
		},
		Integers: []string{
			"id", "forks_count", "stargazers_count", "watchers_count",
			"open_issues_count", "size",
		},
		Booleans: []string{"private", "fork", "archived", "has_issues", "has_wiki", "has_downloads"},
		Dates:    []string{"pushed_at", "created_at", "updated_at"},
		Objects:  map[string]*idl.Schema{"owner": UserSchema},
		Writeable: []string{
			"name", "description", "homepage", "private",
			"has_issues", "has_wiki", "has_downloads", "default_branch",
		},
	})

	GistFileSchema = idl.MustDefine("gist_file", func() idl.Model { return &GistFile{} }, idl.Groups{
		Strings:  []string{"filename", "type", "language", "raw_url", "content"},
		Integers: []string{"size"},
	})

	GistSchema = idl.MustDefine("gist", func() idl.Model { return &Gist{} }, idl.Groups{
		Strings:     []string{"id", "url", "html_url", "description"},
		Integers:    []string{"comments"},
		Booleans:    []string{"public"},
		Dates:       []string{"created_at", "updated_at"},
		Objects:     map[string]*idl.Schema{"owner": UserSchema},
		Collections: map[string]*idl.Schema{"files": GistFileSchema},
		Writeable:   []string{"description"},
	})

	PullRefSchema = idl.MustDefine("pull_ref", func() idl.Model { return &PullRef{} }, idl.Groups{
		Strings: []string{"label", "ref", "sha"},
		Objects: map[string]*idl.Schema{"user": UserSchema, "repo": RepoSchema},
	})

	PullRequestSchema = idl.MustDefine("pull_request", func() idl.Model { return &PullRequest{} }, idl.Groups{
		Strings: []string{
			"state", "title", "body", "html_url", "diff_url", "patch_url",
			"merge_commit_sha",
		},
		Integers: []string{
			"id", "number", "comments", "commits", "additions", "deletions",
			"changed_files",
		},
		Booleans: []string{"merged", "mergeable"},
		Dates:    []string{"created_at", "updated_at", "closed_at", "merged_at"},
		Objects: map[string]*idl.Schema{
			"user":      UserSchema,
			"merged_by": UserSchema,
			"head":      PullRefSchema,
			"base":      PullRefSchema,
		},
		Writeable: []string{"title", "body", "state"},
	})

	PullFileSchema = idl.MustDefine("pull_file", func() idl.Model { return &PullFile{} }, idl.Groups{
		Strings:  []string{"sha", "filename", "status", "blob_url", "raw_url", "patch"},
		Integers: []string{"additions", "deletions", "changes"},
	})

	MergeResultSchema = idl.MustDefine("merge_result", func() idl.Model { return &MergeResult{} }, idl.Groups{
		Strings:  []string{"sha", "message"},
		Booleans: []string{"merged"},
	})
)
