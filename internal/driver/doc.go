// Package driver provides the concrete collaborator implementations an
// orchestration run plugs in: the database backend that creates stores, the
// runtime that starts service processes and the health probe.
//
// Two drivers exist. The Docker driver shells out to the docker CLI, running
// one container per store and per service and reading health from container
// state. The sim driver keeps everything in memory and is used for dry runs.
package driver
