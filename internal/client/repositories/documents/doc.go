// Package documents is the persistence layer of the larger-document tier.
//
// Each document is an independent row keyed by its namespaced key
// (data_<influencerID>_<category>), so concurrent saves of different
// categories never touch each other's rows. DeletePrefix removes a whole
// influencer namespace at once.
//
// Typical usage
//
//	repo := documents.NewSQLiteRepository(db)
//	_ = repo.Put(ctx, "data_42_posts", payload)
//	b, ok, _ := repo.Get(ctx, "data_42_posts")
//	n, _ := repo.DeletePrefix(ctx, "data_42_")
package documents
