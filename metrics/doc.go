/*
Package metrics provides Prometheus-based instrumentation for the
creditstream and cipher packages.

# Overview

Collector registers and records Prometheus instruments via promauto, so
callers never manage a Registry by hand. Every instrument is labeled by
session so a host running many concurrent CreditStreams can break metrics
out per stream.

# Core types

  - Collector: holds the gauge/counter/histogram vectors for one namespace.
    A nil *Collector is valid everywhere one is accepted; every method is a
    no-op on a nil receiver, so instrumentation stays strictly opt-in.

# Coverage

  - Credit-flow gauges: credits outstanding, bytes pending, per session.
  - Credit-flow counters: values sent, ACKs sent, worker faults.
  - Cipher counters: blocks encrypted, blocks decrypted, padding errors.
*/
package metrics
