// Package download drives a batch of located videos through stream selection
// and download. Per item failures are counted and never abort the batch; the
// caller gets a model.DownloadResult listing the written files.
package download
