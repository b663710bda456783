package domain

import "io/fs"

const (
	// CacheDirName is the name of the cache directory under the root.
	CacheDirName = ".derpcache"

	// IndexFileName is the name of the index document inside the cache
	// directory.
	IndexFileName = "index.json"

	// RootEnvVar is the environment variable that selects the cache root
	// directory. The core never reads it; resolution happens at the edges.
	RootEnvVar = "DERPCACHE_ROOT_DIR"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm fs.FileMode = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm fs.FileMode = 0o644
)
