// Copyright (c) 2025, the opsync authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sync

import (
	"context"
	"time"

	corev1 "k8s.io/api/core/v1"

	"github.com/opskit/opsync/pkg/errors"
	"github.com/opskit/opsync/pkg/vault"
)

// fakeVault is an in-memory vault.Client.
type fakeVault struct {
	items    map[string]*vault.Item
	listErr  error
	getErr   map[string]error
	getCalls int
}

func newFakeVault(items ...*vault.Item) *fakeVault {
	fv := &fakeVault{
		items:  make(map[string]*vault.Item, len(items)),
		getErr: make(map[string]error),
	}
	for _, it := range items {
		fv.items[it.Title] = it
	}
	return fv
}

func (f *fakeVault) List(_ context.Context, _, tagFilter string) ([]vault.ItemSummary, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []vault.ItemSummary
	for _, it := range f.items {
		if tagFilter != "" && !tagsMatch(it.Tags, tagFilter) {
			continue
		}
		out = append(out, vault.ItemSummary{ID: it.ID, Title: it.Title, Tags: it.Tags})
	}
	return out, nil
}

func (f *fakeVault) Get(_ context.Context, _, title string) (*vault.Item, error) {
	f.getCalls++
	if err := f.getErr[title]; err != nil {
		return nil, err
	}
	it, ok := f.items[title]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "vault item not found")
	}
	return it, nil
}

type storedSecret struct {
	data    map[string][]byte
	labels  map[string]string
	created time.Time
}

// fakeStore is an in-memory secrets.Store.
type fakeStore struct {
	secrets    map[string]storedSecret // key: namespace/name
	applyErr   error
	createErr  error // forced CreationTime failure
	applyCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{secrets: make(map[string]storedSecret)}
}

func (f *fakeStore) put(namespace, name string, created time.Time, data map[string][]byte) {
	f.secrets[namespace+"/"+name] = storedSecret{data: data, created: created}
}

func (f *fakeStore) CreationTime(_ context.Context, namespace, name string) (time.Time, error) {
	if f.createErr != nil {
		return time.Time{}, f.createErr
	}
	sec, ok := f.secrets[namespace+"/"+name]
	if !ok {
		return time.Time{}, errors.New(errors.ErrCodeNotFound, "destination secret not found")
	}
	return sec.created, nil
}

func (f *fakeStore) Apply(_ context.Context, namespace, name string, data map[string][]byte, labels map[string]string) error {
	f.applyCalls++
	if f.applyErr != nil {
		return f.applyErr
	}
	f.secrets[namespace+"/"+name] = storedSecret{
		data:    data,
		labels:  labels,
		created: time.Now().UTC(),
	}
	return nil
}

func (f *fakeStore) ListManaged(_ context.Context, _ string) ([]corev1.Secret, error) {
	return nil, nil
}
