// Package loader upserts one dataset file into one destination container.
//
// A pass is best-effort per record: the file is parsed up front (any parse
// failure aborts before the first upsert), then every record is upserted
// exactly once, in file order, and each outcome is captured as a
// cosmosload.ItemResult. Upsert failures are logged and never stop the pass.
package loader
