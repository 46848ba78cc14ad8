package repository

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"time"

	"photos-go/internal/photos"
)

// Record layout:
//
//	magic   8 bytes  "PHOTOLIB"
//	version 1 byte
//	flags   1 byte   bit 0 set when the body is encrypted
//	body    gob stream of userRecord, possibly encrypted
var recordMagic = []byte("PHOTOLIB")

const (
	recordVersion byte = 1
	flagEncrypted byte = 1 << 0
)

type userRecord struct {
	Username string
	Photos   []photoRecord
	Albums   []albumRecord
}

// photoRecord appears once per path; albums refer to it by path so that a
// photo shared by several albums is restored as a single instance.
type photoRecord struct {
	Path         string
	Caption      string
	LastModified time.Time
	Tags         []tagRecord
}

type tagRecord struct {
	Name  string
	Value string
}

type albumRecord struct {
	Name   string
	Photos []string
}

// Codec converts user graphs to and from the durable record format.
type Codec struct {
	encryptor  photos.Encryptor
	decryption photos.DecryptionContext
}

// NewCodec returns a codec writing plaintext records.
func NewCodec() *Codec {
	return &Codec{}
}

// NewEncryptedCodec returns a codec that seals records with enc. dec may be
// nil, in which case encrypted records cannot be read back.
func NewEncryptedCodec(enc photos.Encryptor, dec photos.DecryptionContext) *Codec {
	return &Codec{encryptor: enc, decryption: dec}
}

// Encode writes u to w.
func (c *Codec) Encode(w io.Writer, u *photos.User) error {
	var body bytes.Buffer
	if err := gob.NewEncoder(&body).Encode(toRecord(u)); err != nil {
		return fmt.Errorf("encoding user %q: %w", u.Username(), err)
	}

	flags := byte(0)
	if c.encryptor != nil {
		flags |= flagEncrypted
	}
	header := append(append([]byte{}, recordMagic...), recordVersion, flags)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing record header: %w", err)
	}

	if c.encryptor != nil {
		if err := c.encryptor.Encrypt(&body, w); err != nil {
			return fmt.Errorf("encrypting record: %w", err)
		}
		return nil
	}
	if _, err := body.WriteTo(w); err != nil {
		return fmt.Errorf("writing record body: %w", err)
	}
	return nil
}

// Decode reads a user from r. Malformed input yields an error matching
// photos.ErrCorrupt.
func (c *Codec) Decode(r io.Reader) (*photos.User, error) {
	br := bufio.NewReader(r)
	header := make([]byte, len(recordMagic)+2)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("%w: short header", photos.ErrCorrupt)
	}
	if !bytes.Equal(header[:len(recordMagic)], recordMagic) {
		return nil, fmt.Errorf("%w: bad magic", photos.ErrCorrupt)
	}
	if v := header[len(recordMagic)]; v != recordVersion {
		return nil, fmt.Errorf("%w: unsupported record version %d", photos.ErrCorrupt, v)
	}

	var body io.Reader = br
	if header[len(recordMagic)+1]&flagEncrypted != 0 {
		if c.decryption == nil {
			return nil, fmt.Errorf("record is encrypted and no key is unlocked")
		}
		var plain bytes.Buffer
		if err := c.decryption.Decrypt(br, &plain); err != nil {
			return nil, fmt.Errorf("%w: decrypting: %v", photos.ErrCorrupt, err)
		}
		body = &plain
	}

	var rec userRecord
	if err := gob.NewDecoder(body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %v", photos.ErrCorrupt, err)
	}
	return fromRecord(rec)
}

func toRecord(u *photos.User) userRecord {
	rec := userRecord{Username: u.Username()}
	for _, p := range u.Photos() {
		pr := photoRecord{Path: p.Path(), Caption: p.Caption(), LastModified: p.LastModified()}
		for _, t := range p.Tags() {
			pr.Tags = append(pr.Tags, tagRecord{Name: t.Name(), Value: t.Value()})
		}
		rec.Photos = append(rec.Photos, pr)
	}
	for _, a := range u.Albums() {
		ar := albumRecord{Name: a.Name()}
		for _, p := range a.Photos() {
			ar.Photos = append(ar.Photos, p.Path())
		}
		rec.Albums = append(rec.Albums, ar)
	}
	return rec
}

func fromRecord(rec userRecord) (*photos.User, error) {
	user, err := photos.NewUser(rec.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", photos.ErrCorrupt, err)
	}

	byPath := make(map[string]*photos.Photo, len(rec.Photos))
	for _, pr := range rec.Photos {
		tags := make([]photos.Tag, 0, len(pr.Tags))
		for _, tr := range pr.Tags {
			t, err := photos.NewTag(tr.Name, tr.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: photo %s: %v", photos.ErrCorrupt, pr.Path, err)
			}
			tags = append(tags, t)
		}
		byPath[pr.Path] = photos.RestorePhoto(pr.Path, pr.Caption, pr.LastModified, tags)
	}

	for _, ar := range rec.Albums {
		album, err := photos.NewAlbum(ar.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", photos.ErrCorrupt, err)
		}
		for _, path := range ar.Photos {
			p, ok := byPath[path]
			if !ok {
				return nil, fmt.Errorf("%w: album %q references unknown photo %s", photos.ErrCorrupt, ar.Name, path)
			}
			if err := album.AddPhoto(p); err != nil {
				return nil, fmt.Errorf("%w: %v", photos.ErrCorrupt, err)
			}
		}
		if err := user.AddAlbum(album); err != nil {
			return nil, fmt.Errorf("%w: %v", photos.ErrCorrupt, err)
		}
	}
	return user, nil
}
