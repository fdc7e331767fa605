// Package cosmos adapts the Azure Cosmos DB SDK to the cosmosload.Upserter contract.
//
// Authentication uses azidentity: DefaultAzureCredential unless a complete
// service principal is configured, or an account key when one is given
// (local emulator). Each dataset gets one Container handle; its partition-key
// paths come from configuration or from a single container metadata read, and
// every upsert derives the key value from the record body.
package cosmos
