// Package archive uploads the rendered web version of a dispatched digest to
// S3 or an S3-compatible store.
//
// Objects are written under <prefix>/<kind>/<YYYY-MM-DD>.html with a text/html
// content type, so a bucket fronted by a CDN serves them directly:
//
//	a, err := archive.New(archive.Config{
//		Bucket:    "digests",
//		AccessKey: os.Getenv("ARCHIVE_ACCESS_KEY"),
//		SecretKey: os.Getenv("ARCHIVE_SECRET_KEY"),
//		Endpoint:  "http://localhost:9000",
//		PathStyle: true,
//	})
//	if err != nil {
//		return err
//	}
//	obj, err := a.Put(ctx, content.KindLetters, day, doc.HTML)
//
// S3 failures are normalised to the package sentinels (ErrAccessDenied,
// ErrNotFound, ErrUploadFailed) so callers match with errors.Is.
package archive
