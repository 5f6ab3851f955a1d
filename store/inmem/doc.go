// SPDX-License-Identifier: Apache-2.0

/*
Package inmem implements the cache store contract in process memory. It is
meant for getting a portal instance up without provisioning a persistent
store; cached scene blobs do not survive a restart, so it is recommended for
test environments only.
*/
package inmem
