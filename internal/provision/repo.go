package provision

import (
	"path/filepath"

	"github.com/kp7742/theos/internal/logger"
)

// ensureRepository makes the Theos repository available under the
// installation root. A non-empty root is treated as already cloned, and the
// repository's own updater is delegated to instead of re-cloning; its
// failure is advisory since a working install is already in place. An empty
// or missing root triggers a full recursive clone, whose exit status is
// trusted without further inspection of the tree.
func (b *Bootstrapper) ensureRepository() error {
	root := b.installationRoot()

	acquired, err := ensureResource("Theos repository",
		func() bool { return dirNonEmpty(root) },
		func() error {
			logger.Info("[INFO] Cloning Theos into %s...\n", root)
			return b.run("git", "clone", "--recursive", b.cfg.RepositoryURL, root)
		},
		nil,
	)
	if err != nil {
		return wrapf(ExitCloneFailed, err, "failed to clone %s", b.cfg.RepositoryURL)
	}

	if !acquired {
		logger.Info("[INFO] Updating existing Theos installation...\n")
		if err := b.run(filepath.Join(root, "bin", "update-theos")); err != nil {
			logger.Warn("[WARN] Theos self-update failed (continuing): %v\n", err)
		}
	} else {
		logger.Info("[INFO] Theos cloned.\n")
	}
	return nil
}
