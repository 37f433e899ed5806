package value

import "fmt"

// ObjectType tags which concrete heap object an Object describes. String
// is the only variant this interpreter core allocates.
type ObjectType byte

const (
	ObjString ObjectType = iota
)

// StringObject is the heap payload for an interned string: its length,
// content, and a precomputed FNV-1a hash used by the intern table.
type StringObject struct {
	Length int
	Chars  string
	Hash   uint32
}

// Object is a heap-allocated value: a type tag, the next-pointer
// threading it onto the VM's object list, and (today, the only variant)
// its string payload. Every Object-variant Value references an Object
// registered on that list exactly once between allocation and VM
// teardown.
type Object struct {
	Type ObjectType
	Next *Object
	Str  StringObject
}

func (o *Object) String() string {
	switch o.Type {
	case ObjString:
		return o.Str.Chars
	default:
		panic(fmt.Sprintf("value: unreachable object type %d", o.Type))
	}
}

// hashString computes the FNV-1a hash of data with the classic 32-bit
// seed and prime, xor-then-multiply bytewise.
func hashString(data string) uint32 {
	const (
		seed  uint32 = 2166136261
		prime uint32 = 16777619
	)
	hash := seed
	for i := 0; i < len(data); i++ {
		hash ^= uint32(data[i])
		hash *= prime
	}
	return hash
}

func newStringObject(chars string) *Object {
	return &Object{
		Type: ObjString,
		Str:  StringObject{Length: len(chars), Chars: chars, Hash: hashString(chars)},
	}
}

// Heap is the VM-owned registry of every heap object allocated during a
// run: an intrusive singly linked list rooted here, plus the string
// intern table keyed by content. It exists so free-on-shutdown has a
// single place to walk, and so interning has a single place to dedupe.
type Heap struct {
	objects *Object
	strings Table
}

// NewHeap returns an empty, ready-to-use Heap.
func NewHeap() *Heap {
	return &Heap{}
}

// register links obj onto the object list. Every allocation must call
// this exactly once, at allocation time.
func (h *Heap) register(obj *Object) {
	obj.Next = h.objects
	h.objects = obj
}

// Intern returns the canonical *Object for chars: the existing one if an
// equal-content string is already interned, or a freshly allocated and
// registered one otherwise. Two interned strings never coexist with
// equal content.
func (h *Heap) Intern(chars string) *Object {
	hash := hashString(chars)
	if existing := h.strings.Find(chars, hash); existing != nil {
		return existing
	}

	obj := newStringObject(chars)
	h.register(obj)
	h.strings.Set(obj)
	return obj
}

// Concat builds a+b (left operand first) and interns the result.
func (h *Heap) Concat(a, b *Object) *Object {
	return h.Intern(a.Str.Chars + b.Str.Chars)
}

// Free walks the object list and unlinks every object, and clears the
// intern table. Go's garbage collector reclaims the backing memory once
// nothing references it; this method's job is to drop the VM's own
// references so that reclamation can happen, matching free_VM's
// walk-and-release of every tracked object.
func (h *Heap) Free() {
	for obj := h.objects; obj != nil; {
		next := obj.Next
		obj.Next = nil
		obj = next
	}
	h.objects = nil
	h.strings = Table{}
}
