package photos

import (
	"errors"
	"fmt"
)

// BootstrapStock builds or refreshes the stock user from the images in
// stockDir. A missing stock record is created with one album named
// "stock". An existing record is loaded and newly found files are
// appended; photos already known keep their captions and tags.
// Returns the number of photos added.
func (s *LibraryService) BootstrapStock(stockDir string) (int, error) {
	user, err := s.repo.Load(StockUsername)
	switch {
	case errors.Is(err, ErrNotFound):
		s.logger.Info("creating stock library", "dir", stockDir)
		if user, err = NewUser(StockUsername); err != nil {
			return 0, err
		}
	case err != nil:
		return 0, fmt.Errorf("loading stock library: %w", err)
	}

	album := user.FindAlbum(StockAlbum)
	if album == nil {
		if album, err = user.CreateAlbum(StockAlbum); err != nil {
			return 0, err
		}
	}

	added, err := s.mergeImages(user, album, stockDir)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Save(user); err != nil {
		return added, fmt.Errorf("saving stock library: %w", err)
	}
	s.logger.Info("stock library ready", "added", added, "total", album.Len())
	return added, nil
}

// mergeImages adds every image directly inside dir that album does not
// hold yet. A missing directory is logged and merges nothing.
func (s *LibraryService) mergeImages(user *User, album *Album, dir string) (int, error) {
	root, err := s.fsmgr.Resolve(dir)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			s.logger.Warn("stock photo directory does not exist", "dir", dir)
			return 0, nil
		}
		return 0, fmt.Errorf("resolving stock directory: %w", err)
	}
	if !root.IsDir() {
		return 0, fmt.Errorf("%w: %s is not a directory", ErrInvalidArgument, dir)
	}

	files, err := s.fsmgr.FindFiles(root)
	if err != nil {
		return 0, fmt.Errorf("scanning stock directory: %w", err)
	}

	added := 0
	for _, f := range files {
		if !f.IsImage() || album.FindPhoto(f.String()) != nil {
			continue
		}
		photo := user.Photo(f.String())
		if photo == nil {
			if photo, err = NewPhoto(f); err != nil {
				return added, err
			}
		}
		if err := user.AddPhoto(album, photo); err != nil {
			return added, err
		}
		s.logger.Debug("stock photo added", "path", f.String())
		added++
	}
	return added, nil
}
