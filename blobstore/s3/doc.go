// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", "ontologies/",
//	    config.WithRegion("us-east-1"),
//	)
//
//	rc, err := ontology.Open(ctx, store, "family.ofn.gz")
//
// # Features
//
//   - Streaming reads
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
