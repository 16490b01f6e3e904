// Package objectstore は画像などのファイルをアップロードディレクトリに保存する。
package objectstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
)

// Local はディスク上のディレクトリ(fileblob バケット)に保存し、公開URLを返す
type Local struct {
	root    string
	baseURL string
	bucket  *blob.Bucket
	now     func() time.Time
}

func NewLocal(root, baseURL string) (*Local, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	// 静的配信するディレクトリなので .attrs は書かない。
	// 一時ファイルは別デバイスへの rename を避けて同じディレクトリに作る
	bucket, err := fileblob.OpenBucket(root, &fileblob.Options{
		CreateDir: true,
		NoTempDir: true,
		Metadata:  fileblob.MetadataDontWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("open upload bucket: %w", err)
	}
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/"), bucket: bucket, now: time.Now}, nil
}

// Root は保存先ディレクトリ（静的配信用）
func (s *Local) Root() string {
	return s.root
}

func (s *Local) Close() error {
	return s.bucket.Close()
}

// Put は key（例: products/1700000000000_rose.jpg）に書き込み、URLを返す
func (s *Local) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key = path.Clean("/" + key)[1:]
	if key == "" || key == "." {
		return "", fmt.Errorf("object key is required")
	}

	// 途中で失敗したら ctx をキャンセルして書きかけを破棄する
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := s.bucket.NewWriter(wctx, key, nil)
	if err != nil {
		return "", fmt.Errorf("open object: %w", err)
	}
	if _, err := io.Copy(w, r); err != nil {
		cancel()
		_ = w.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// Exists は key のオブジェクトがあるか
func (s *Local) Exists(ctx context.Context, key string) (bool, error) {
	return s.bucket.Exists(ctx, path.Clean("/" + key)[1:])
}

// TimestampedKey は "<prefix>/<unixミリ秒>_<ファイル名>"
func (s *Local) TimestampedKey(prefix, filename string) string {
	return fmt.Sprintf("%s/%d_%s", strings.Trim(prefix, "/"), s.now().UnixMilli(), SanitizeFilename(filename))
}

// FieldKey は "<prefix>/<ファイル名>"（設定画像用）
func (s *Local) FieldKey(prefix, filename string) string {
	return strings.Trim(prefix, "/") + "/" + SanitizeFilename(filename)
}

// SanitizeFilename はパス部分を落とし、空白を _ にする
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	if name == "" || name == "." || name == ".." || name == "/" {
		return "file"
	}
	return name
}
